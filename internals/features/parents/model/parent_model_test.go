// file: internals/features/parents/model/parent_model_test.go
package model

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func TestHasVerifiedLink(t *testing.T) {
	verified := uuid.New()
	pending := uuid.New()

	p := ParentModel{
		ParentStudents: datatypes.NewJSONType([]StudentLink{
			{StudentID: verified, Relationship: "mother", IsVerified: true},
			{StudentID: pending, Relationship: "mother", IsVerified: false},
		}),
	}

	if !p.HasVerifiedLink(verified) {
		t.Fatal("expected access to verified student")
	}
	if p.HasVerifiedLink(pending) {
		t.Fatal("pending link must not grant access")
	}
	if p.HasVerifiedLink(uuid.New()) {
		t.Fatal("unlinked student must not grant access")
	}
}

func TestVerifiedLinks(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	p := ParentModel{
		ParentStudents: datatypes.NewJSONType([]StudentLink{
			{StudentID: a, IsVerified: true},
			{StudentID: b, IsVerified: false},
		}),
	}

	links := p.VerifiedLinks()
	if len(links) != 1 || links[0].StudentID != a {
		t.Fatalf("VerifiedLinks() = %+v, want only %s", links, a)
	}

	var empty ParentModel
	if got := empty.VerifiedLinks(); len(got) != 0 {
		t.Fatalf("expected no links for empty parent, got %+v", got)
	}
}
