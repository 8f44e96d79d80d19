package domain

import (
	"errors"
)

var (
	MessageSuccessRenderLabel = "label rendered successfully"
	MessageSuccessPrintSheet  = "print sheet generated successfully"

	MessageFailedRenderLabel = "failed to render label"
	MessageFailedPrintSheet  = "failed to generate print sheet"

	ErrLabelUnrenderable = errors.New("identifier cannot be rendered as EAN-13")
)

type (
	RenderLabelOptions struct {
		Width     int  `json:"width" validate:"omitempty,min=1"`
		Height    int  `json:"height" validate:"omitempty,min=1"`
		ShowLabel bool `json:"show_label"`
	}

	PrintSheetRequest struct {
		SampleIDs []string `json:"sample_ids" validate:"required,min=1,dive,uuid"`
		Columns   int      `json:"columns" validate:"omitempty,min=1,max=6"`
	}
)
