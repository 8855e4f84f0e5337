package pipeline

import (
	"github.com/matzehuels/pinboard/pkg/layout"
	"github.com/matzehuels/pinboard/pkg/layout/sink"
)

// Render writes res in every format listed in opts. When adjusted is non-nil
// the sticky overlay is drawn on top of the base table.
func Render(res layout.Result, adjusted []layout.Attributes, name string, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = renderJSON(res, adjusted, name, opts)
		case FormatSVG:
			data = renderSVG(res, adjusted, name, opts)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderJSON(res layout.Result, adjusted []layout.Attributes, name string, opts Options) ([]byte, error) {
	jsonOpts := []sink.JSONOption{
		sink.WithJSONName(name),
		sink.WithJSONEngine(opts.Engine),
	}
	if adjusted != nil {
		jsonOpts = append(jsonOpts, sink.WithJSONSticky(opts.Viewport(), adjusted))
	}
	return sink.RenderJSON(res, jsonOpts...)
}

func renderSVG(res layout.Result, adjusted []layout.Attributes, name string, opts Options) []byte {
	var svgOpts []sink.SVGOption
	if name != "" {
		svgOpts = append(svgOpts, sink.WithTitle(name))
	}
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if adjusted != nil {
		svgOpts = append(svgOpts, sink.WithViewport(opts.Viewport()), sink.WithSticky(adjusted))
	}
	return sink.RenderSVG(res, svgOpts...)
}
