package board

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/jeopardy/internal/domain/board"
)

// Struct field names shared by the server and the client.
const (
	fieldBoardID  = "board_id"
	fieldLoadedAt = "loaded_at"
	fieldRows     = "rows"
	fieldColumns  = "columns"
	fieldTitle    = "title"
	fieldCells    = "cells"
	fieldState    = "state"
	fieldText     = "text"
	fieldChanged  = "changed"
	fieldCategory = "category"
	fieldClue     = "clue"
)

var (
	// errMissingField is returned when a required struct field is absent.
	errMissingField = errors.New("missing field")
	// errBadIndex is returned for non-integral or negative indexes.
	errBadIndex = errors.New("index must be a non-negative integer")
	// errBadState is returned for unknown reveal state names.
	errBadState = errors.New("unknown reveal state")
)

// SnapshotToStruct encodes a snapshot as a protobuf Struct.
func SnapshotToStruct(s *domain.Snapshot) *structpb.Struct {
	columns := make([]*structpb.Value, 0, len(s.Columns))

	for _, column := range s.Columns {
		cells := make([]*structpb.Value, 0, len(column.Cells))

		for _, cell := range column.Cells {
			cells = append(cells, structpb.NewStructValue(&structpb.Struct{
				Fields: map[string]*structpb.Value{
					fieldState: structpb.NewStringValue(cell.State.String()),
					fieldText:  structpb.NewStringValue(cell.Text),
				},
			}))
		}

		columns = append(columns, structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{
				fieldTitle: structpb.NewStringValue(column.Title),
				fieldCells: structpb.NewListValue(&structpb.ListValue{Values: cells}),
			},
		}))
	}

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			fieldBoardID:  structpb.NewStringValue(s.ID),
			fieldLoadedAt: structpb.NewStringValue(s.LoadedAt.UTC().Format(time.RFC3339Nano)),
			fieldRows:     structpb.NewNumberValue(float64(s.Rows)),
			fieldColumns:  structpb.NewListValue(&structpb.ListValue{Values: columns}),
		},
	}
}

// SnapshotFromStruct decodes a snapshot produced by SnapshotToStruct.
func SnapshotFromStruct(st *structpb.Struct) (*domain.Snapshot, error) {
	fields := st.GetFields()

	id, ok := fields[fieldBoardID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errMissingField, fieldBoardID)
	}

	var loadedAt time.Time

	if raw := fields[fieldLoadedAt].GetStringValue(); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", fieldLoadedAt, err)
		}

		loadedAt = parsed
	}

	rows, err := index(fields, fieldRows)
	if err != nil {
		return nil, err
	}

	rawColumns := fields[fieldColumns].GetListValue().GetValues()
	columns := make([]domain.Column, 0, len(rawColumns))

	for _, rawColumn := range rawColumns {
		columnFields := rawColumn.GetStructValue().GetFields()
		rawCells := columnFields[fieldCells].GetListValue().GetValues()
		cells := make([]domain.Cell, 0, len(rawCells))

		for _, rawCell := range rawCells {
			cellFields := rawCell.GetStructValue().GetFields()

			state, ok := domain.ParseRevealState(cellFields[fieldState].GetStringValue())
			if !ok {
				return nil, fmt.Errorf("%w: %q", errBadState, cellFields[fieldState].GetStringValue())
			}

			cells = append(cells, domain.Cell{
				State: state,
				Text:  cellFields[fieldText].GetStringValue(),
			})
		}

		columns = append(columns, domain.Column{
			Title: columnFields[fieldTitle].GetStringValue(),
			Cells: cells,
		})
	}

	return &domain.Snapshot{
		ID:       id.GetStringValue(),
		LoadedAt: loadedAt,
		Rows:     rows,
		Columns:  columns,
	}, nil
}

// NewRevealRequest encodes a reveal request.
func NewRevealRequest(boardID string, categoryIndex, clueIndex int) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			fieldBoardID:  structpb.NewStringValue(boardID),
			fieldCategory: structpb.NewNumberValue(float64(categoryIndex)),
			fieldClue:     structpb.NewNumberValue(float64(clueIndex)),
		},
	}
}

// parseRevealRequest decodes a reveal request. board_id is optional.
func parseRevealRequest(st *structpb.Struct) (string, int, int, error) {
	fields := st.GetFields()

	categoryIndex, err := index(fields, fieldCategory)
	if err != nil {
		return "", 0, 0, err
	}

	clueIndex, err := index(fields, fieldClue)
	if err != nil {
		return "", 0, 0, err
	}

	return fields[fieldBoardID].GetStringValue(), categoryIndex, clueIndex, nil
}

// TransitionToStruct encodes a reveal result.
func TransitionToStruct(t domain.Transition) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			fieldText:    structpb.NewStringValue(t.Text),
			fieldState:   structpb.NewStringValue(t.State.String()),
			fieldChanged: structpb.NewBoolValue(t.Changed),
		},
	}
}

// TransitionFromStruct decodes a reveal result.
func TransitionFromStruct(st *structpb.Struct) (domain.Transition, error) {
	fields := st.GetFields()

	state, ok := domain.ParseRevealState(fields[fieldState].GetStringValue())
	if !ok {
		return domain.Transition{}, fmt.Errorf("%w: %q", errBadState, fields[fieldState].GetStringValue())
	}

	return domain.Transition{
		Text:    fields[fieldText].GetStringValue(),
		State:   state,
		Changed: fields[fieldChanged].GetBoolValue(),
	}, nil
}

// index reads a non-negative integer field.
func index(fields map[string]*structpb.Value, name string) (int, error) {
	v, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", errMissingField, name)
	}

	number, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %s", errBadIndex, name)
	}

	f := number.NumberValue
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s=%v", errBadIndex, name, f)
	}

	return int(f), nil
}
