package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestSourceRefValidate(t *testing.T) {
	id := uuid.New()

	if err := VideoSource(id).Validate(); err != nil {
		t.Errorf("video source: unexpected error %v", err)
	}
	if err := MotionSource(id).Validate(); err != nil {
		t.Errorf("motion source: unexpected error %v", err)
	}
	if err := (SourceRef{}).Validate(); err == nil {
		t.Error("zero SourceRef: expected error")
	}
	if err := (SourceRef{Kind: "track", ID: id}).Validate(); err == nil {
		t.Error("unknown kind: expected error")
	}
	if err := (SourceRef{Kind: SourceKindVideo}).Validate(); err == nil {
		t.Error("nil id: expected error")
	}
}

func TestMontageCreateInputToSourceRef(t *testing.T) {
	videoID := uuid.New()
	motionID := uuid.New()

	ref, err := (&MontageCreateInput{VideoID: &videoID}).ToSourceRef()
	if err != nil {
		t.Fatalf("video only: unexpected error %v", err)
	}
	if ref.Kind != SourceKindVideo || ref.ID != videoID {
		t.Errorf("video only: got %+v", ref)
	}

	ref, err = (&MontageCreateInput{MotionID: &motionID}).ToSourceRef()
	if err != nil {
		t.Fatalf("motion only: unexpected error %v", err)
	}
	if ref.Kind != SourceKindMotion || ref.ID != motionID {
		t.Errorf("motion only: got %+v", ref)
	}

	if _, err = (&MontageCreateInput{}).ToSourceRef(); err == nil {
		t.Error("neither set: expected error")
	}
	if _, err = (&MontageCreateInput{VideoID: &videoID, MotionID: &motionID}).ToSourceRef(); err == nil {
		t.Error("both set: expected error")
	}
}
