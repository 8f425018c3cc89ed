package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/pedal/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRecord(t *testing.T) {
	valid := func() model.DayRecord {
		return model.DayRecord{
			Date:  time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC),
			Hour:  model.NoHour,
			Count: 10,
		}
	}

	tests := []struct {
		modify  func(*model.DayRecord)
		wantErr error
		name    string
	}{
		{name: "valid daily record", modify: func(*model.DayRecord) {}},
		{name: "valid hourly record", modify: func(r *model.DayRecord) { r.Hour = 23 }},
		{name: "zero count", modify: func(r *model.DayRecord) { r.Count = 0 }},
		{name: "missing date", modify: func(r *model.DayRecord) { r.Date = time.Time{} }, wantErr: ErrInvalidRecord},
		{name: "negative count", modify: func(r *model.DayRecord) { r.Count = -1 }, wantErr: ErrInvalidRecord},
		{name: "hour too large", modify: func(r *model.DayRecord) { r.Hour = 24 }, wantErr: ErrInvalidRecord},
		{name: "hour too small", modify: func(r *model.DayRecord) { r.Hour = -2 }, wantErr: ErrInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid()
			tt.modify(&rec)
			err := validateRecord(&rec)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateRecord() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRecords(t *testing.T) {
	if err := validateRecords(nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("nil slice error = %v, want ErrNilParameter", err)
	}
	if err := validateRecords([]model.DayRecord{}); !errors.Is(err, ErrEmptySlice) {
		t.Errorf("empty slice error = %v, want ErrEmptySlice", err)
	}

	bad := []model.DayRecord{
		{Date: time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC), Count: 1, Hour: model.NoHour},
		{Count: 1, Hour: model.NoHour},
	}
	err := validateRecords(bad)
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("validateRecords() error = %v, want ErrInvalidRecord", err)
	}
}
