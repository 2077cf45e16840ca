package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tabuclique/pkg/errors"
)

// Layout engines accepted by [RenderSVG].
var engines = map[string]graphviz.Layout{
	"circo": graphviz.CIRCO,
	"neato": graphviz.NEATO,
	"fdp":   graphviz.FDP,
	"sfdp":  graphviz.SFDP,
	"dot":   graphviz.DOT,
}

// Engine returns the layout engine for o: o.Layout when set, circo for a
// clique-only drawing (the clique sits on one ring) and neato otherwise.
func (o Options) Engine() string {
	switch {
	case o.Layout != "":
		return o.Layout
	case o.Full || o.Neighborhood:
		return "neato"
	default:
		return "circo"
	}
}

// ValidateLayout reports an UNSUPPORTED error for an unknown engine name.
// The empty name selects the default engine.
func ValidateLayout(name string) error {
	if _, ok := engines[name]; name != "" && !ok {
		return errors.New(errors.ErrCodeUnsupported, "unknown layout engine %q", name)
	}
	return nil
}

// RenderSVG lays out a DOT document with the named Graphviz engine and
// returns SVG whose root element has an origin-based viewBox.
func RenderSVG(ctx context.Context, dot, engine string) ([]byte, error) {
	layout, ok := engines[engine]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown layout engine %q", engine)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(layout)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("%s layout: %w", engine, err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgRootRe = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the viewBox starts at the
// origin and width/height are the viewBox size in user units. Graphviz
// emits pt sizes and a translated origin.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, errW := strconv.ParseFloat(string(m[3]), 64)
	h, errH := strconv.ParseFloat(string(m[4]), 64)
	if errW != nil || errH != nil || w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgRootRe.ReplaceAll(svg, []byte(root))
}
