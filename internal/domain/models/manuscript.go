// internal/domain/models/manuscript.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Manuscript status lifecycle. A manuscript starts as StatusSubmitted and
// moves to StatusUnderReview when the first reviewer assignment succeeds.
// The remaining statuses are terminal decisions reachable only from
// StatusUnderReview.
const (
	StatusSubmitted   = "submitted"
	StatusUnderReview = "under_review"
	StatusAccepted    = "accepted"
	StatusRejected    = "rejected"
	StatusPublished   = "published"
)

// ManuscriptAuthor is one entry in a manuscript's ordered author list.
type ManuscriptAuthor struct {
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	IsCorresponding bool               `bson:"is_corresponding" json:"isCorresponding"`
	Order           int                `bson:"order" json:"order"`
}

// FileDescriptor identifies the stored manuscript file. When the blob
// backend is unavailable at submission time, Key carries a local_ prefix,
// URL stays empty, and the payload is held in the local fallback store.
type FileDescriptor struct {
	Key   string `bson:"key" json:"key"`
	URL   string `bson:"url" json:"url"`
	Pages int    `bson:"pages" json:"pages"`
	Size  int64  `bson:"size" json:"size"`
}

// PublicationCharges is the charge breakdown computed at submission.
// Derived purely from the page count; see the charges package.
type PublicationCharges struct {
	BaseAmount  int `bson:"base_amount" json:"baseAmount"`
	ExtraPages  int `bson:"extra_pages" json:"extraPages"`
	TotalAmount int `bson:"total_amount" json:"totalAmount"`
}

// Manuscript is a submission moving through the review lifecycle.
// The manuscript exclusively owns its embedded author list and charge
// breakdown; assignments reference it by ID from their own collection.
type Manuscript struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title               string               `bson:"title" json:"title"`
	TitleCI             string               `bson:"title_ci" json:"-"`
	Abstract            string               `bson:"abstract" json:"abstract"`
	Keywords            []string             `bson:"keywords" json:"keywords"`
	Domain              string               `bson:"domain" json:"domain"`
	Authors             []ManuscriptAuthor   `bson:"authors" json:"authors"`
	CorrespondingAuthor primitive.ObjectID   `bson:"corresponding_author" json:"correspondingAuthor"`
	File                FileDescriptor       `bson:"file" json:"manuscriptFile"`
	Charges             PublicationCharges   `bson:"charges" json:"publicationCharges"`
	Status              string               `bson:"status" json:"status"`
	AssignedEditors     []primitive.ObjectID `bson:"assigned_editors,omitempty" json:"assignedEditors,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasAuthor reports whether userID appears in the manuscript's author list.
func (m *Manuscript) HasAuthor(userID primitive.ObjectID) bool {
	for _, a := range m.Authors {
		if a.UserID == userID {
			return true
		}
	}
	return false
}
