package deck

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadFile reads a deck from a file. JSON files unmarshal directly into a
// Deck; anything else is parsed as a plain text decklist.
func LoadFile(path string) (Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, fmt.Errorf("read deck file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var d Deck
		if err := json.Unmarshal(data, &d); err != nil {
			return Deck{}, fmt.Errorf("parse deck JSON: %w", err)
		}
		if d.Name == "" {
			d.Name = deckNameFromPath(path)
		}
		return d, nil
	}

	d, err := ParseList(strings.NewReader(string(data)))
	if err != nil {
		return Deck{}, err
	}
	if d.Name == "" {
		d.Name = deckNameFromPath(path)
	}
	return d, nil
}

// ParseList parses a plain text decklist of the form used by most deck
// sites: one "<count> <card name>" per line, blank lines and lines starting
// with "//" or "#" ignored. A line of the form "Commander: <name>" (or a
// "1 <name>" line under a "Commander" section header) sets the commander.
// Cards parsed this way carry only a name; the engine treats missing
// attributes as soft data errors.
func ParseList(r io.Reader) (Deck, error) {
	var d Deck
	inCommanderSection := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}

		if name, ok := strings.CutPrefix(line, "Commander:"); ok {
			commander := Card{Name: strings.TrimSpace(name)}
			d.Commander = &commander
			continue
		}
		lower := strings.ToLower(line)
		if lower == "commander" {
			inCommanderSection = true
			continue
		}
		if lower == "deck" || lower == "mainboard" {
			inCommanderSection = false
			continue
		}

		count, name, err := splitCountLine(line)
		if err != nil {
			return Deck{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if inCommanderSection && d.Commander == nil {
			commander := Card{Name: name}
			d.Commander = &commander
			continue
		}
		d.Cards = append(d.Cards, Entry{Card: Card{Name: name}, Quantity: count})
	}
	if err := scanner.Err(); err != nil {
		return Deck{}, fmt.Errorf("read decklist: %w", err)
	}
	return d, nil
}

// splitCountLine splits "3 Lightning Bolt" into count and name. A line with
// no leading count means a single copy.
func splitCountLine(line string) (int, string, error) {
	fields := strings.SplitN(line, " ", 2)
	if len(fields) == 2 {
		countField := strings.TrimSuffix(fields[0], "x")
		if count, err := strconv.Atoi(countField); err == nil {
			if count <= 0 {
				return 0, "", fmt.Errorf("invalid card count %q", fields[0])
			}
			return count, strings.TrimSpace(fields[1]), nil
		}
	}
	return 1, line, nil
}

// deckNameFromPath derives a deck name from the file name.
func deckNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
