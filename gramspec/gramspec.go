// Package gramspec reads the line-oriented grammar/query text format
// described by spec.md §6: the format a surrounding CLI collaborator
// would use to feed the core, preserved here only because the test suite
// exercises it directly. Nothing under lr1check, grammar, automaton, or
// table imports this package; production recognition never parses grammar
// source text.
//
// Grounded on the teacher's own test fixture readers (e.g.
// internal/tqw.ScanFileInfo's small hand-rolled line scanning) and on the
// original Python project's input_handler.py, whose read_grammar/
// read_words this format is transcribed from.
package gramspec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dekarrin/lr1check/grammar"
)

// ReadGrammar parses the grammar portion of the format from r:
//
//	line 1: "N T P"
//	line 2: N nonterminals, whitespace-separated
//	line 3: T terminals, whitespace-separated
//	lines 4..3+P: "LEFT -> RIGHT", RIGHT a (possibly empty) run of
//	  single-character symbols with no separators
//	line 4+P: start symbol
//
// It returns the constructed grammar.Grammar. ReadGrammar buffers r
// internally (via bufio.Scanner) and consumes only the lines above, but r
// itself is left in an unspecified position afterward — buffering means
// later bytes of the grammar's own stream may already be read into memory
// that ReadGrammar never returns to the caller. To read a grammar and its
// queries from one stream, use ReadGrammarAndQueries instead of chaining
// ReadGrammar(r) and ReadQueries(r): that drops whatever ReadGrammar
// buffered past the start-symbol line.
func ReadGrammar(r io.Reader) (grammar.Grammar, error) {
	return readGrammar(bufio.NewScanner(r))
}

// ReadGrammarAndQueries parses the full format (grammar, then query
// words) from a single stream, sharing one bufio.Scanner across both
// parts so no buffered input is dropped between them.
func ReadGrammarAndQueries(r io.Reader) (grammar.Grammar, []string, error) {
	sc := bufio.NewScanner(r)

	g, err := readGrammar(sc)
	if err != nil {
		return grammar.Grammar{}, nil, err
	}

	words, err := readQueries(sc)
	if err != nil {
		return grammar.Grammar{}, nil, err
	}

	return g, words, nil
}

func readGrammar(sc *bufio.Scanner) (grammar.Grammar, error) {
	header, err := nextLine(sc)
	if err != nil {
		return grammar.Grammar{}, fmt.Errorf("gramspec: reading header: %w", err)
	}
	fields := strings.Fields(header)
	if len(fields) != 3 {
		return grammar.Grammar{}, fmt.Errorf("gramspec: header line must have 3 integers, got %q", header)
	}
	n, err1 := strconv.Atoi(fields[0])
	t, err2 := strconv.Atoi(fields[1])
	p, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return grammar.Grammar{}, fmt.Errorf("gramspec: header line must have 3 integers, got %q", header)
	}

	nonTermLine, err := nextLine(sc)
	if err != nil {
		return grammar.Grammar{}, fmt.Errorf("gramspec: reading nonterminal line: %w", err)
	}
	nonTerms := strings.Fields(nonTermLine)
	if len(nonTerms) != n {
		return grammar.Grammar{}, fmt.Errorf("gramspec: expected %d nonterminals, got %d", n, len(nonTerms))
	}

	termLine, err := nextLine(sc)
	if err != nil {
		return grammar.Grammar{}, fmt.Errorf("gramspec: reading terminal line: %w", err)
	}
	terms := strings.Fields(termLine)
	if len(terms) != t {
		return grammar.Grammar{}, fmt.Errorf("gramspec: expected %d terminals, got %d", t, len(terms))
	}

	var prods []grammar.Production
	for i := 0; i < p; i++ {
		line, err := nextLine(sc)
		if err != nil {
			return grammar.Grammar{}, fmt.Errorf("gramspec: reading production %d: %w", i, err)
		}

		left, right, ok := strings.Cut(line, "->")
		if !ok {
			return grammar.Grammar{}, fmt.Errorf("gramspec: production %q missing '->'", line)
		}
		head := strings.TrimSpace(left)
		body := symbolsOf(strings.TrimSpace(right))

		prods = append(prods, grammar.Production{Head: head, Body: body})
	}

	start, err := nextLine(sc)
	if err != nil {
		return grammar.Grammar{}, fmt.Errorf("gramspec: reading start symbol: %w", err)
	}
	start = strings.TrimSpace(start)

	return grammar.New(terms, nonTerms, prods, start)
}

// ReadQueries parses the query-word portion of the format from r: a line
// holding an integer M, then M lines each holding one query word whose
// symbols, like a production's right-hand side, are its individual
// characters with no separators. An empty line denotes the empty word.
//
// r must not be a stream whose grammar portion was already consumed by a
// separate ReadGrammar(r') call over the same underlying bytes — use
// ReadGrammarAndQueries for that case.
func ReadQueries(r io.Reader) ([]string, error) {
	return readQueries(bufio.NewScanner(r))
}

func readQueries(sc *bufio.Scanner) ([]string, error) {
	countLine, err := nextLine(sc)
	if err != nil {
		return nil, fmt.Errorf("gramspec: reading query count: %w", err)
	}
	m, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil {
		return nil, fmt.Errorf("gramspec: query count must be an integer, got %q", countLine)
	}

	words := make([]string, 0, m)
	for i := 0; i < m; i++ {
		line, err := nextLine(sc)
		if err != nil {
			return nil, fmt.Errorf("gramspec: reading query %d: %w", i, err)
		}
		words = append(words, strings.TrimSpace(line))
	}
	return words, nil
}

// SplitWord breaks a query word read by ReadQueries into the one-
// character-per-symbol sequence Recognizer.Predict expects.
func SplitWord(word string) []string {
	return symbolsOf(word)
}

func symbolsOf(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func nextLine(sc *bufio.Scanner) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return sc.Text(), nil
}
