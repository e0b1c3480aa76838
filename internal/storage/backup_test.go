package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte("deck corpus backup payload")

	encrypted, err := encryptData(plaintext, "correct horse")
	if err != nil {
		t.Fatalf("encryptData: %v", err)
	}
	if bytes.Contains(encrypted, plaintext) {
		t.Error("ciphertext contains the plaintext")
	}

	decrypted, err := decryptData(encrypted, "correct horse")
	if err != nil {
		t.Fatalf("decryptData: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("round trip mismatch: %q", decrypted)
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	encrypted, err := encryptData([]byte("secret"), "right")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := decryptData(encrypted, "wrong"); err == nil {
		t.Error("expected an error for the wrong password")
	}
}

func TestDecryptTruncatedData(t *testing.T) {
	if _, err := decryptData([]byte("too short"), "pw"); err == nil {
		t.Error("expected an error for truncated data")
	}
}

func TestIsEncryptedBackup(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.db")
	if err := os.WriteFile(plain, []byte("SQLite format 3\x00"), 0o644); err != nil {
		t.Fatal(err)
	}
	if enc, err := IsEncryptedBackup(plain); err != nil || enc {
		t.Errorf("plain file: enc=%v err=%v", enc, err)
	}

	encPath := filepath.Join(dir, "backup.db.enc")
	if err := encryptFile(plain, encPath, "pw"); err != nil {
		t.Fatalf("encryptFile: %v", err)
	}
	if enc, err := IsEncryptedBackup(encPath); err != nil || !enc {
		t.Errorf("encrypted file: enc=%v err=%v", enc, err)
	}
}

func TestBackupAndRestore(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data.db")

	cfg := DefaultConfig(dbPath)
	cfg.AutoMigrate = true
	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := db.Conn().Exec(
		`INSERT INTO decks (name, commander, archetype, created_at, updated_at) VALUES ('Zombies', 'Wilhelt', 'midrange', '', '')`,
	); err != nil {
		t.Fatalf("seed: %v", err)
	}

	bm := NewBackupManager(dbPath)
	backupPath, err := bm.Backup(&BackupConfig{BackupDir: filepath.Join(dir, "backups"), BackupName: "snap"})
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if !strings.HasSuffix(backupPath, "snap.db") {
		t.Errorf("backupPath = %q", backupPath)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	restorePath := filepath.Join(dir, "restored.db")
	if err := NewBackupManager(restorePath).Restore(backupPath, ""); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	restored, err := Open(DefaultConfig(restorePath))
	if err != nil {
		t.Fatalf("open restored: %v", err)
	}
	defer func() { _ = restored.Close() }()

	var name string
	if err := restored.Conn().QueryRow(`SELECT name FROM decks`).Scan(&name); err != nil {
		t.Fatalf("query restored: %v", err)
	}
	if name != "Zombies" {
		t.Errorf("restored deck = %q", name)
	}
}

func TestEncryptedBackupRequiresPassword(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data.db")

	cfg := DefaultConfig(dbPath)
	cfg.AutoMigrate = true
	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = db.Close() }()

	bm := NewBackupManager(dbPath)
	backupPath, err := bm.Backup(&BackupConfig{
		BackupDir:  filepath.Join(dir, "backups"),
		BackupName: "snap",
		Password:   "pw",
	})
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if !strings.HasSuffix(backupPath, ".enc") {
		t.Errorf("backupPath = %q, want .enc suffix", backupPath)
	}
	if _, err := os.Stat(strings.TrimSuffix(backupPath, ".enc")); !os.IsNotExist(err) {
		t.Error("plaintext backup left on disk")
	}

	restore := NewBackupManager(filepath.Join(dir, "restored.db"))
	if err := restore.Restore(backupPath, ""); err == nil {
		t.Error("expected an error restoring an encrypted backup without a password")
	}
	if err := restore.Restore(backupPath, "pw"); err != nil {
		t.Errorf("Restore with password: %v", err)
	}
}
