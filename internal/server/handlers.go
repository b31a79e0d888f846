package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"

	"golang.org/x/image/math/f32"

	"github.com/ironsheep/pixelcore/internal/brush"
	"github.com/ironsheep/pixelcore/internal/dither"
	"github.com/ironsheep/pixelcore/internal/imaging"
	"github.com/ironsheep/pixelcore/internal/pixbuf"
	"github.com/ironsheep/pixelcore/internal/pixel"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_recolor").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "color_to_hunterlab":
		return s.handleColorToHunterLab(args)
	case "hunterlab_to_color":
		return s.handleHunterLabToColor(args)

	// Editing Operations
	case "image_recolor":
		return s.handleImageRecolor(args)
	case "image_dither":
		return s.handleImageDither(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return errors.New("missing arguments")
	}
	return json.Unmarshal(args, v)
}

// pipeline edits a decoded image and returns the result.
type pipeline func(img image.Image) (image.Image, error)

// formatNames lists the buffer formats an edit can run in.
var formatNames = []string{"rgba8", "bgra8", "rgba64", "gray8", "rgbaf32"}

// selectPipeline picks the pipeline for a buffer format name. An empty name
// selects rgba8.
func selectPipeline(format string, pipelines map[string]pipeline) (pipeline, error) {
	name := strings.ToLower(strings.TrimSpace(format))
	if name == "" {
		name = "rgba8"
	}
	p, ok := pipelines[name]
	if !ok {
		names := append([]string(nil), formatNames...)
		sort.Strings(names)
		return nil, fmt.Errorf("unknown pixel format %q (want one of %s)", format, strings.Join(names, ", "))
	}
	return p, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path       string `json:"path"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Illuminant string `json:"illuminant"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	d, err := imaging.NewDescriber(a.Illuminant)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return d.SampleColor(img, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label"`
	} `json:"points"`
	Illuminant string `json:"illuminant"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	d, err := imaging.NewDescriber(a.Illuminant)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return d.SampleColors(img, points)
}

type colorToHunterLabArgs struct {
	Color      string `json:"color"`
	Illuminant string `json:"illuminant"`
}

func (s *Server) handleColorToHunterLab(args json.RawMessage) (interface{}, error) {
	var a colorToHunterLabArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	d, err := imaging.NewDescriber(a.Illuminant)
	if err != nil {
		return nil, err
	}
	v, err := imaging.ParseColor(a.Color)
	if err != nil {
		return nil, err
	}
	res := d.Describe(v)
	return &res, nil
}

type hunterLabToColorArgs struct {
	L          float64  `json:"l"`
	A          float64  `json:"a"`
	B          float64  `json:"b"`
	Alpha      *float32 `json:"alpha"`
	Illuminant string   `json:"illuminant"`
}

// HunterLabToColorResult is the result of the hunterlab_to_color tool.
type HunterLabToColorResult struct {
	imaging.ColorResult
	InGamut bool `json:"in_gamut"`
}

func (s *Server) handleHunterLabToColor(args json.RawMessage) (interface{}, error) {
	var a hunterLabToColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	d, err := imaging.NewDescriber(a.Illuminant)
	if err != nil {
		return nil, err
	}
	alpha := float32(1)
	if a.Alpha != nil {
		alpha = *a.Alpha
	}
	res, inGamut := d.FromHunterLab(a.L, a.A, a.B, alpha)
	return &HunterLabToColorResult{ColorResult: res, InGamut: inGamut}, nil
}

// === Editing Handlers ===

type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type imageRecolorArgs struct {
	Path       string       `json:"path"`
	Source     string       `json:"source"`
	Target     string       `json:"target"`
	Threshold  float32      `json:"threshold"`
	Region     *regionArgs  `json:"region"`
	Polygon    [][2]float32 `json:"polygon"`
	Antialias  *bool        `json:"antialias"`
	Format     string       `json:"pixel_format"`
	OutputPath string       `json:"output_path"`
}

func (s *Server) handleImageRecolor(args json.RawMessage) (interface{}, error) {
	var a imageRecolorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Region != nil && len(a.Polygon) > 0 {
		return nil, errors.New("region and polygon are mutually exclusive")
	}
	if a.Region != nil && (a.Region.X1 >= a.Region.X2 || a.Region.Y1 >= a.Region.Y2) {
		return nil, errors.New("invalid region: x1 must be < x2, y1 must be < y2")
	}
	if len(a.Polygon) > 0 && len(a.Polygon) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 points, got %d", len(a.Polygon))
	}
	source, err := imaging.ParseColor(a.Source)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	target, err := imaging.ParseColor(a.Target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	run, err := selectPipeline(a.Format, map[string]pipeline{
		"rgba8":   recolorPipeline[pixel.RGBA8](&a, source, target, s.workers),
		"bgra8":   recolorPipeline[pixel.BGRA8](&a, source, target, s.workers),
		"rgba64":  recolorPipeline[pixel.RGBA64](&a, source, target, s.workers),
		"gray8":   recolorPipeline[pixel.Gray8](&a, source, target, s.workers),
		"rgbaf32": recolorPipeline[pixel.RGBAF32](&a, source, target, s.workers),
	})
	if err != nil {
		return nil, err
	}
	return s.edit(a.Path, a.OutputPath, run)
}

func recolorPipeline[P pixel.Pixel[P]](a *imageRecolorArgs, source, target pixel.Vector, workers int) pipeline {
	return func(img image.Image) (image.Image, error) {
		b, err := brush.NewRecolor(pixel.Pack[P](source), pixel.Pack[P](target), a.Threshold)
		if err != nil {
			return nil, err
		}
		buf, err := imaging.ToBuffer[P](img)
		if err != nil {
			return nil, err
		}

		err = buf.With(func(acc *pixbuf.Accessor[P]) error {
			switch {
			case len(a.Polygon) > 0:
				opts := brush.DefaultOptions
				if a.Antialias != nil {
					opts.Antialias = *a.Antialias
				}
				points := make([]f32.Vec2, len(a.Polygon))
				for i, p := range a.Polygon {
					points[i] = f32.Vec2{p[0], p[1]}
				}
				brush.FillPolygon[P](acc, b, points, opts)
			case a.Region != nil:
				brush.FillParallel[P](acc, b, image.Rect(a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2), workers)
			default:
				brush.FillParallel[P](acc, b, acc.Bounds(), workers)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return imaging.FromBuffer(buf), nil
	}
}

type imageDitherArgs struct {
	Path       string      `json:"path"`
	Mode       string      `json:"mode"`
	Weights    [][]float32 `json:"weights"`
	Divisor    float32     `json:"divisor"`
	Threshold  *float32    `json:"threshold"`
	Lower      string      `json:"lower"`
	Upper      string      `json:"upper"`
	Palette    []string    `json:"palette"`
	Format     string      `json:"pixel_format"`
	OutputPath string      `json:"output_path"`
}

func (s *Server) handleImageDither(args json.RawMessage) (interface{}, error) {
	var a imageDitherArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var colors []pixel.Vector
	switch a.Mode {
	case "", "binary":
		a.Mode = "binary"
		lower, upper := a.Lower, a.Upper
		if lower == "" {
			lower = "#000000"
		}
		if upper == "" {
			upper = "#ffffff"
		}
		for _, c := range []string{lower, upper} {
			v, err := imaging.ParseColor(c)
			if err != nil {
				return nil, err
			}
			colors = append(colors, v)
		}
	case "palette":
		if len(a.Palette) == 0 {
			return nil, dither.ErrEmptyPalette
		}
		for _, c := range a.Palette {
			v, err := imaging.ParseColor(c)
			if err != nil {
				return nil, err
			}
			colors = append(colors, v)
		}
	default:
		return nil, fmt.Errorf("unknown dither mode %q (want binary or palette)", a.Mode)
	}

	run, err := selectPipeline(a.Format, map[string]pipeline{
		"rgba8":   ditherPipeline[pixel.RGBA8](&a, colors),
		"bgra8":   ditherPipeline[pixel.BGRA8](&a, colors),
		"rgba64":  ditherPipeline[pixel.RGBA64](&a, colors),
		"gray8":   ditherPipeline[pixel.Gray8](&a, colors),
		"rgbaf32": ditherPipeline[pixel.RGBAF32](&a, colors),
	})
	if err != nil {
		return nil, err
	}
	return s.edit(a.Path, a.OutputPath, run)
}

func ditherPipeline[P pixel.Pixel[P]](a *imageDitherArgs, colors []pixel.Vector) pipeline {
	return func(img image.Image) (image.Image, error) {
		m, err := dither.NewMatrix[P](a.Weights, a.Divisor)
		if err != nil {
			return nil, err
		}
		palette := make([]P, len(colors))
		for i, c := range colors {
			palette[i] = pixel.Pack[P](c)
		}
		buf, err := imaging.ToBuffer[P](img)
		if err != nil {
			return nil, err
		}

		err = buf.With(func(acc *pixbuf.Accessor[P]) error {
			if a.Mode == "palette" {
				return dither.Palette[P](acc, m, palette)
			}
			threshold := float32(0.5)
			if a.Threshold != nil {
				threshold = *a.Threshold
			}
			dither.Binary[P](acc, m, threshold, palette[0], palette[1])
			return nil
		})
		if err != nil {
			return nil, err
		}
		return imaging.FromBuffer(buf), nil
	}
}

// edit loads path, runs the pipeline on a private copy and encodes the
// result. The cached source image is never modified.
func (s *Server) edit(path, outputPath string, run pipeline) (*imaging.EncodedImage, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	out, err := run(img)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(out, outputPath)
}
