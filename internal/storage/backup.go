package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/argon2"
)

const (
	// backupMagicHeader is prepended to encrypted backups for identification.
	backupMagicHeader = "EDHAENC1"

	// Argon2 parameters (RFC 9106 recommendations)
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32 // 256 bits for AES-256

	saltLength = 32
)

// BackupManager handles database backup and restore operations.
type BackupManager struct {
	dbPath string
}

// NewBackupManager creates a new backup manager for the given database path.
func NewBackupManager(dbPath string) *BackupManager {
	return &BackupManager{dbPath: dbPath}
}

// BackupConfig holds configuration for backup operations.
type BackupConfig struct {
	// BackupDir is the directory where backups are stored. If empty,
	// defaults to a "backups" subdirectory next to the database.
	BackupDir string

	// BackupName is the backup file name without extension. If empty, a
	// timestamp-based name is generated.
	BackupName string

	// Password encrypts the backup when non-empty.
	Password string
}

// Backup creates a backup of the database using VACUUM INTO, which is
// atomic and doesn't require exclusive locks. When a password is set the
// backup is encrypted in place and gets a .enc extension.
func (bm *BackupManager) Backup(config *BackupConfig) (string, error) {
	if config == nil {
		config = &BackupConfig{}
	}

	backupDir := config.BackupDir
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(bm.dbPath), "backups")
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupName := config.BackupName
	if backupName == "" {
		backupName = fmt.Sprintf("backup_%s", time.Now().Format("20060102_150405"))
	}
	backupPath := filepath.Join(backupDir, backupName+".db")

	sourceDB, err := sql.Open("sqlite", bm.dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open source database: %w", err)
	}
	defer func() { _ = sourceDB.Close() }()

	vacuumSQL := fmt.Sprintf("VACUUM INTO %q", backupPath)
	if _, err := sourceDB.Exec(vacuumSQL); err != nil {
		return "", fmt.Errorf("failed to vacuum into backup: %w", err)
	}

	if config.Password == "" {
		return backupPath, nil
	}

	encPath := backupPath + ".enc"
	if err := encryptFile(backupPath, encPath, config.Password); err != nil {
		_ = os.Remove(encPath)
		return "", fmt.Errorf("failed to encrypt backup: %w", err)
	}
	if err := os.Remove(backupPath); err != nil {
		return "", fmt.Errorf("failed to remove plaintext backup: %w", err)
	}
	return encPath, nil
}

// Restore replaces the database with the contents of a backup file. An
// encrypted backup requires the password used at backup time.
func (bm *BackupManager) Restore(backupPath, password string) error {
	encrypted, err := IsEncryptedBackup(backupPath)
	if err != nil {
		return fmt.Errorf("failed to inspect backup: %w", err)
	}

	if encrypted {
		if password == "" {
			return fmt.Errorf("backup is encrypted, password required")
		}
		return decryptFile(backupPath, bm.dbPath, password)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if err := os.WriteFile(bm.dbPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}

// IsEncryptedBackup checks a file for the encrypted backup magic header.
func IsEncryptedBackup(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() { _ = file.Close() }()

	header := make([]byte, len(backupMagicHeader))
	n, err := file.Read(header)
	if err != nil && err != io.EOF {
		return false, err
	}
	return n == len(backupMagicHeader) && string(header) == backupMagicHeader, nil
}

// deriveKey derives an AES-256 key from a password using Argon2id.
func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

// encryptData encrypts data with AES-256-GCM under a password-derived key.
// Output format: salt || nonce || ciphertext (includes auth tag).
func encryptData(plaintext []byte, password string) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	result := make([]byte, 0, len(salt)+len(nonce)+len(ciphertext))
	result = append(result, salt...)
	result = append(result, nonce...)
	result = append(result, ciphertext...)
	return result, nil
}

// decryptData reverses encryptData.
func decryptData(encrypted []byte, password string) ([]byte, error) {
	// Minimum: salt + 12-byte nonce + 16-byte auth tag.
	if len(encrypted) < saltLength+12+16 {
		return nil, fmt.Errorf("encrypted data too short")
	}

	salt := encrypted[:saltLength]
	encrypted = encrypted[saltLength:]

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(encrypted) < nonceSize {
		return nil, fmt.Errorf("encrypted data too short for nonce")
	}
	nonce := encrypted[:nonceSize]
	ciphertext := encrypted[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed (wrong password or corrupted data): %w", err)
	}
	return plaintext, nil
}

// encryptFile encrypts a file, prefixing the magic header.
func encryptFile(sourcePath, destPath, password string) error {
	plaintext, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	encrypted, err := encryptData(plaintext, password)
	if err != nil {
		return err
	}

	destFile, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() { _ = destFile.Close() }()

	if _, err := destFile.Write([]byte(backupMagicHeader)); err != nil {
		return fmt.Errorf("failed to write magic header: %w", err)
	}
	if _, err := destFile.Write(encrypted); err != nil {
		return fmt.Errorf("failed to write encrypted data: %w", err)
	}
	return nil
}

// decryptFile decrypts an encrypted backup into destPath.
func decryptFile(sourcePath, destPath, password string) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read encrypted file: %w", err)
	}

	if len(data) < len(backupMagicHeader) || string(data[:len(backupMagicHeader)]) != backupMagicHeader {
		return fmt.Errorf("file is not an encrypted backup")
	}

	plaintext, err := decryptData(data[len(backupMagicHeader):], password)
	if err != nil {
		return err
	}

	if err := os.WriteFile(destPath, plaintext, 0o644); err != nil {
		return fmt.Errorf("failed to write decrypted file: %w", err)
	}
	return nil
}
