package sentiment

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Lexicon maps lowercase tokens to a valence in [-4, 4]. It is loaded from a
// file in the vader_lexicon.txt layout and layered over the stock lexicon.
type Lexicon struct {
	valence map[string]float64
}

// LoadLexicon parses tab-separated "token<TAB>valence[<TAB>...]" lines.
// Blank lines and lines starting with '#' are skipped; extra columns are ignored.
func LoadLexicon(r io.Reader) (*Lexicon, error) {
	lex := &Lexicon{valence: make(map[string]float64)}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("lexicon line %d: expected token and valence", line)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", line, err)
		}
		lex.valence[strings.ToLower(strings.TrimSpace(fields[0]))] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	return lex, nil
}

// LoadLexiconFile reads a lexicon from path
func LoadLexiconFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lexicon: %w", err)
	}
	defer f.Close()
	return LoadLexicon(f)
}

// Valence returns the valence of token (case-insensitive)
func (l *Lexicon) Valence(token string) (float64, bool) {
	v, ok := l.valence[strings.ToLower(token)]
	return v, ok
}

// Len returns the number of entries; a nil Lexicon has none
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.valence)
}
