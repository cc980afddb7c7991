package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/smallyu/go-ecpoint/internal/crypto/curves"
	"github.com/smallyu/go-ecpoint/internal/finder"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func outputFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", formatText:
		return formatText, nil
	case formatJSON, formatYAML:
		return f, nil
	default:
		return "", errors.Errorf("unknown output format %q", s)
	}
}

// Integers are rendered as decimal strings so that JSON consumers do not
// truncate them.
type curveReport struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	A    string `json:"a" yaml:"a"`
	B    string `json:"b" yaml:"b"`
	P    string `json:"p" yaml:"p"`
}

type pairReport struct {
	X      string `json:"x" yaml:"x"`
	Square string `json:"square" yaml:"square"`
	Y1     string `json:"y1" yaml:"y1"`
	Y2     string `json:"y2" yaml:"y2"`
}

type report struct {
	Curve      curveReport  `json:"curve" yaml:"curve"`
	NonResidue string       `json:"non_residue" yaml:"non_residue"`
	Points     []pairReport `json:"points" yaml:"points"`
}

func newReport(curve *curves.Params, pairs []*finder.Pair) *report {
	r := &report{
		Curve: curveReport{
			Name: curve.Name,
			A:    curve.A.String(),
			B:    curve.B.String(),
			P:    curve.P.String(),
		},
	}
	for _, p := range pairs {
		r.NonResidue = p.NonResidue.String()
		r.Points = append(r.Points, pairReport{
			X:      p.First.X.String(),
			Square: p.RHS.String(),
			Y1:     p.First.Y.String(),
			Y2:     p.Second.Y.String(),
		})
	}
	return r
}

func render(w io.Writer, format string, curve *curves.Params, pairs []*finder.Pair) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.WithStack(enc.Encode(newReport(curve, pairs)))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newReport(curve, pairs)); err != nil {
			return errors.WithStack(err)
		}
		return errors.WithStack(enc.Close())
	default:
		return writeText(w, pairs)
	}
}

func writeText(w io.Writer, pairs []*finder.Pair) error {
	var b strings.Builder
	var points []string
	for _, p := range pairs {
		fmt.Fprintf(&b, "Square number: %s\n", p.RHS)
		fmt.Fprintf(&b, "Non-square number: %s\n", p.NonResidue)
		fmt.Fprintf(&b, "Square roots: (%s, %s)\n", p.First.Y, p.Second.Y)
		for _, pt := range p.Points() {
			points = append(points, fmt.Sprintf("(%s, %s)", pt.X, pt.Y))
		}
	}
	b.WriteString("\n" + strings.Repeat("-", 50) + "\n\n")
	fmt.Fprintf(&b, "The points on the elliptic curve are: [%s]\n", strings.Join(points, ", "))

	_, err := io.WriteString(w, b.String())
	return errors.WithStack(err)
}
