package manuscriptpolicy

import (
	"testing"

	"github.com/dalemusser/scholarhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var allRoleSets = map[string]models.Roles{
	"none":            {},
	"author":          {Author: true},
	"reviewer":        {Reviewer: true},
	"editor":          {Editor: true},
	"editor_in_chief": {EditorInChief: true},
	"author+reviewer": {Author: true, Reviewer: true},
	"editor+eic":      {Editor: true, EditorInChief: true},
	"all":             {Author: true, Reviewer: true, Editor: true, EditorInChief: true},
}

func TestCanPerform_PrivilegedOpsRequireEditorInChief(t *testing.T) {
	privileged := []Operation{OpViewDashboard, OpAssignReviewer, OpCancelAssignment, OpUpdateUserRoles}

	for name, roles := range allRoleSets {
		for _, op := range privileged {
			got := CanPerform(roles, op)
			want := roles.EditorInChief
			if got != want {
				t.Errorf("CanPerform(%s, %s) = %v, want %v", name, op, got, want)
			}
		}
	}
}

func TestCanPerform_SubmitAllowsAnyAuthenticatedActor(t *testing.T) {
	for name, roles := range allRoleSets {
		if !CanPerform(roles, OpSubmitManuscript) {
			t.Errorf("CanPerform(%s, submit) = false, want true", name)
		}
		if !CanPerform(roles, OpViewOwn) {
			t.Errorf("CanPerform(%s, view_own) = false, want true", name)
		}
	}
}

func TestCanPerform_UnknownOperationDenied(t *testing.T) {
	for name, roles := range allRoleSets {
		if CanPerform(roles, Operation("delete_everything")) {
			t.Errorf("CanPerform(%s, unknown op) = true, want default deny", name)
		}
	}
}

func TestCanViewManuscript(t *testing.T) {
	author := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	ms := &models.Manuscript{
		Authors: []models.ManuscriptAuthor{
			{UserID: author, IsCorresponding: true, Order: 1},
		},
		CorrespondingAuthor: author,
	}

	tests := []struct {
		name  string
		roles models.Roles
		actor primitive.ObjectID
		want  bool
	}{
		{"listed author", models.Roles{Author: true}, author, true},
		{"author of other papers only", models.Roles{Author: true}, stranger, false},
		{"no roles stranger", models.Roles{}, stranger, false},
		{"reviewer stranger", models.Roles{Reviewer: true}, stranger, false},
		{"editor", models.Roles{Editor: true}, stranger, true},
		{"editor in chief", models.Roles{EditorInChief: true}, stranger, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewManuscript(tt.roles, tt.actor, ms); got != tt.want {
				t.Errorf("CanViewManuscript = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanActOnAssignment(t *testing.T) {
	reviewer := primitive.NewObjectID()
	a := &models.Assignment{ReviewerID: reviewer}

	if !CanActOnAssignment(reviewer, a) {
		t.Error("assigned reviewer should be allowed")
	}
	if CanActOnAssignment(primitive.NewObjectID(), a) {
		t.Error("a different user must be denied")
	}
}
