package label

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"gorm.io/gorm"

	"concurso-backend/domain"
	"concurso-backend/pkg/checkin"
	"concurso-backend/pkg/sample"
)

const (
	DefaultWidth  = 260
	DefaultHeight = 80
	defaultColumns = 3
)

type (
	LabelService interface {
		RenderSampleLabel(ctx context.Context, sampleID string, opts domain.RenderLabelOptions) (string, error)
		RenderCode(code string, opts domain.RenderLabelOptions) string
		PrintSheet(ctx context.Context, req domain.PrintSheetRequest) (string, error)
	}

	labelService struct {
		sampleRepository sample.SampleRepository
	}
)

func NewLabelService(sampleRepository sample.SampleRepository) LabelService {
	return &labelService{sampleRepository: sampleRepository}
}

func (s *labelService) RenderSampleLabel(ctx context.Context, sampleID string, opts domain.RenderLabelOptions) (string, error) {
	smp, err := s.sampleRepository.GetSampleByID(ctx, sampleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrSampleNotFound
		}
		return "", err
	}

	code := ""
	if smp.Barcode != nil {
		code = *smp.Barcode
	} else if smp.DisplayCode != nil {
		code = *smp.DisplayCode
	}
	return s.RenderCode(code, opts), nil
}

// RenderCode draws the identifier as an EAN-13 SVG. A malformed identifier
// degrades to a placeholder so the surrounding screen never breaks.
func (s *labelService) RenderCode(code string, opts domain.RenderLabelOptions) string {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	normalized := checkin.Normalize(code)
	if normalized == "" {
		return placeholderSVG(opts)
	}

	writer := oned.NewEAN13Writer()
	matrix, err := writer.Encode(normalized, gozxing.BarcodeFormat_EAN_13, opts.Width, opts.Height, nil)
	if err != nil {
		return placeholderSVG(opts)
	}

	return matrixToSVG(matrix, normalized, opts)
}

// PrintSheet lays selected labels out in a fixed-column grid for the platform
// print dialog. Unknown ids and samples without an identifier are skipped.
func (s *labelService) PrintSheet(ctx context.Context, req domain.PrintSheetRequest) (string, error) {
	columns := req.Columns
	if columns <= 0 {
		columns = defaultColumns
	}

	samples, err := s.sampleRepository.GetSamplesByIDs(ctx, req.SampleIDs)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Etiquetas</title>")
	b.WriteString("<style>")
	fmt.Fprintf(&b, "body{margin:0;font-family:sans-serif}.sheet{display:grid;grid-template-columns:repeat(%d,1fr);gap:8px;padding:8px}", columns)
	b.WriteString(".cell{text-align:center;padding:6px;border:1px dashed #ccc;page-break-inside:avoid}")
	b.WriteString(".code{font-size:12px;letter-spacing:2px;margin-top:2px}")
	b.WriteString("</style></head><body><div class=\"sheet\">\n")

	for _, smp := range samples {
		code := ""
		if smp.Barcode != nil {
			code = *smp.Barcode
		} else if smp.DisplayCode != nil {
			code = *smp.DisplayCode
		}
		if code == "" {
			continue
		}

		svg := s.RenderCode(code, domain.RenderLabelOptions{})
		b.WriteString("<div class=\"cell\">")
		b.WriteString(svg)
		fmt.Fprintf(&b, "<div class=\"code\">%s</div>", checkin.Normalize(code))
		b.WriteString("</div>\n")
	}

	b.WriteString("</div></body></html>\n")
	return b.String(), nil
}

func matrixToSVG(matrix *gozxing.BitMatrix, code string, opts domain.RenderLabelOptions) string {
	width := matrix.GetWidth()
	height := matrix.GetHeight()

	textSpace := 0
	if opts.ShowLabel {
		textSpace = 14
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">",
		opts.Width, opts.Height+textSpace, width, height+textSpace)
	b.WriteString("<rect width=\"100%\" height=\"100%\" fill=\"white\"/>")

	// 1D symbols are uniform per column, so the first row describes every bar.
	x := 0
	for x < width {
		if !matrix.Get(x, 0) {
			x++
			continue
		}
		run := 0
		for x+run < width && matrix.Get(x+run, 0) {
			run++
		}
		fmt.Fprintf(&b, "<rect x=\"%d\" y=\"0\" width=\"%d\" height=\"%d\" fill=\"black\"/>", x, run, height)
		x += run
	}

	if opts.ShowLabel {
		fmt.Fprintf(&b,
			"<text x=\"%d\" y=\"%d\" text-anchor=\"middle\" font-family=\"monospace\" font-size=\"12\">%s</text>",
			width/2, height+12, code)
	}

	b.WriteString("</svg>")
	return b.String()
}

func placeholderSVG(opts domain.RenderLabelOptions) string {
	return fmt.Sprintf(
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\"><rect width=\"100%%\" height=\"100%%\" fill=\"#eee\"/><text x=\"50%%\" y=\"50%%\" text-anchor=\"middle\" font-size=\"11\" fill=\"#888\">sin codigo</text></svg>",
		opts.Width, opts.Height)
}
