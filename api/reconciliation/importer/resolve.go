package importer

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"ConciliacaoFornecedores/api/reconciliation/cleaning"
	"ConciliacaoFornecedores/api/reconciliation/reconerr"
	"ConciliacaoFornecedores/internal/config"
)

// Resolution maps target columns to candidate header positions.
// Derived columns stay out of Columns; the cleaner synthesizes them.
// Missing lists the optional columns that resolved to nothing.
type Resolution struct {
	Columns map[string]int
	Derived []string
	Missing []string
}

// Resolve matches candidate headers against a target schema. Pure
// function, no I/O. Strategies per column, first hit wins: declarative
// alias, case-insensitive name match, similarity at the cutoff on the
// normalized forms, derivation. Unresolved required columns are a
// FormatError; two candidates scoring inside the ambiguity band are a
// MappingError.
func Resolve(candidates []string, schema TargetSchema) (Resolution, error) {
	res := Resolution{Columns: make(map[string]int, len(schema.Columns))}
	used := make(map[int]bool, len(candidates))

	normalized := make([]string, len(candidates))
	for i, c := range candidates {
		normalized[i] = cleaning.NormalizeText(c)
	}

	var missingRequired []string
	for _, col := range schema.Columns {
		if idx, ok := matchAlias(col, candidates, used); ok {
			res.Columns[col.Name] = idx
			used[idx] = true
			continue
		}
		if idx, ok := matchName(col, candidates, used); ok {
			res.Columns[col.Name] = idx
			used[idx] = true
			continue
		}
		idx, ok, err := matchSimilar(col, candidates, normalized, used)
		if err != nil {
			return Resolution{}, err
		}
		if ok {
			res.Columns[col.Name] = idx
			used[idx] = true
			continue
		}
		if col.Derived {
			res.Derived = append(res.Derived, col.Name)
			continue
		}
		if col.Required {
			missingRequired = append(missingRequired, col.Name)
			continue
		}
		res.Missing = append(res.Missing, col.Name)
	}

	if len(missingRequired) > 0 {
		return Resolution{}, &reconerr.FormatError{Missing: missingRequired}
	}
	return res, nil
}

func matchAlias(col Column, candidates []string, used map[int]bool) (int, bool) {
	for _, alias := range col.Aliases {
		for i, c := range candidates {
			if !used[i] && strings.EqualFold(alias, c) {
				return i, true
			}
		}
	}
	return 0, false
}

func matchName(col Column, candidates []string, used map[int]bool) (int, bool) {
	for i, c := range candidates {
		if !used[i] && strings.EqualFold(col.Name, c) {
			return i, true
		}
	}
	return 0, false
}

// matchSimilar scores every unused candidate against the column's
// aliases and name, on the diacritic-stripped case-folded forms. The
// best candidate wins when it clears the cutoff and beats the runner-up
// by more than the ambiguity band.
func matchSimilar(col Column, candidates, normalized []string, used map[int]bool) (int, bool, error) {
	targets := make([]string, 0, len(col.Aliases)+1)
	for _, alias := range col.Aliases {
		targets = append(targets, cleaning.NormalizeText(alias))
	}
	targets = append(targets, cleaning.NormalizeText(col.Name))

	bestIdx, secondIdx := -1, -1
	bestScore, secondScore := 0.0, 0.0
	for i := range candidates {
		if used[i] || normalized[i] == "" {
			continue
		}
		score := 0.0
		for _, t := range targets {
			if s := similarity(t, normalized[i]); s > score {
				score = s
			}
		}
		switch {
		case score > bestScore:
			secondIdx, secondScore = bestIdx, bestScore
			bestIdx, bestScore = i, score
		case score > secondScore:
			secondIdx, secondScore = i, score
		}
	}

	if bestIdx < 0 || bestScore < config.HeaderSimilarityCutoff {
		return 0, false, nil
	}
	if secondIdx >= 0 && bestScore-secondScore < config.HeaderAmbiguityBand {
		return 0, false, &reconerr.MappingError{
			Column:     col.Name,
			Candidates: []string{candidates[bestIdx], candidates[secondIdx]},
		}
	}
	return bestIdx, true, nil
}

func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptions)
	return 1 - float64(dist)/float64(longest)
}
