package store

import (
	"context"
	"errors"
	"testing"

	"timepick/internal/model"
	"timepick/internal/numeric"

	"github.com/google/go-cmp/cmp"
)

func TestSavedTimes_CRUD(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	lunch := &model.TimeStruct{Hour: numeric.Of(12), Minute: numeric.Of(30), Second: numeric.NaN}
	alarm := &model.TimeStruct{Hour: numeric.Of(6), Minute: numeric.Of(45), Second: numeric.Of(10)}
	if err := s.SaveTime(ctx, "lunch", lunch); err != nil {
		t.Fatalf("SaveTime(lunch): %v", err)
	}
	if err := s.SaveTime(ctx, " alarm ", alarm); err != nil {
		t.Fatalf("SaveTime(alarm): %v", err)
	}

	got, err := s.LoadTime(ctx, "lunch")
	if err != nil {
		t.Fatalf("LoadTime: %v", err)
	}
	if diff := cmp.Diff(lunch, got.Time, cmp.AllowUnexported(numeric.Int{})); diff != "" {
		t.Fatalf("LoadTime mismatch (-want +got):\n%s", diff)
	}

	list, err := s.ListTimes(ctx)
	if err != nil {
		t.Fatalf("ListTimes: %v", err)
	}
	var names []string
	for _, st := range list {
		names = append(names, st.Name)
	}
	if diff := cmp.Diff([]string{"alarm", "lunch"}, names); diff != "" {
		t.Fatalf("ListTimes names mismatch (-want +got):\n%s", diff)
	}

	// Replace keeps a single row per name.
	alarm.Minute = numeric.Of(50)
	if err := s.SaveTime(ctx, "alarm", alarm); err != nil {
		t.Fatalf("SaveTime(replace): %v", err)
	}
	got, err = s.LoadTime(ctx, "alarm")
	if err != nil {
		t.Fatalf("LoadTime(alarm): %v", err)
	}
	if got.Time.Minute != numeric.Of(50) || got.Time.Second != numeric.Of(10) {
		t.Fatalf("unexpected alarm: %+v", got.Time)
	}

	if err := s.DeleteTime(ctx, "lunch"); err != nil {
		t.Fatalf("DeleteTime: %v", err)
	}
	if _, err := s.LoadTime(ctx, "lunch"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LoadTime after delete: got %v, want ErrNotFound", err)
	}
	if err := s.DeleteTime(ctx, "lunch"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteTime twice: got %v, want ErrNotFound", err)
	}
}

func TestSaveTime_RejectsIncompleteTime(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	if err := s.SaveTime(ctx, "x", nil); err == nil {
		t.Fatalf("expected error for nil time")
	}
	bad := &model.TimeStruct{Hour: numeric.Of(1), Minute: numeric.NaN, Second: numeric.NaN}
	if err := s.SaveTime(ctx, "x", bad); err == nil {
		t.Fatalf("expected error for missing minute")
	}
	if err := s.SaveTime(ctx, "  ", &model.TimeStruct{Hour: numeric.Of(1), Minute: numeric.Of(1)}); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestSaveTime_RejectsOutOfRangeFields(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	cases := map[string]*model.TimeStruct{
		"hour 24":   {Hour: numeric.Of(24), Minute: numeric.Of(0), Second: numeric.NaN},
		"minute 60": {Hour: numeric.Of(10), Minute: numeric.Of(60), Second: numeric.NaN},
		"second 60": {Hour: numeric.Of(10), Minute: numeric.Of(0), Second: numeric.Of(60)},
		"negative":  {Hour: numeric.Of(-1), Minute: numeric.Of(0), Second: numeric.NaN},
	}
	for name, tm := range cases {
		if err := s.SaveTime(ctx, "x", tm); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := s.LoadTime(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LoadTime: got %v, want ErrNotFound", err)
	}
}
