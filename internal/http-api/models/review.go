package models

import "time"

type Review struct {
	ID       int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID  int64   `json:"title_id" gorm:"not null;uniqueIndex:uix_reviews_title_author"`
	AuthorID *string `json:"author_id" gorm:"type:uuid;uniqueIndex:uix_reviews_title_author"`
	Text     string  `json:"text" gorm:"not null;type:text"`
	// score stays inside [1,10]; the service validates, the check backs it up
	Score     int       `json:"score" gorm:"not null;default:1;check:score >= 1 AND score <= 10"`
	CreatedAt time.Time `json:"pub_date" gorm:"autoCreateTime"`

	// Associations. The title owns its reviews (cascade); the author is only
	// referenced, so deleting a user keeps the review with a null author.
	Title  Title `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL;"`
}

func (Review) TableName() string {
	return "reviews"
}
