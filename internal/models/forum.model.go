package models

import (
	"github.com/google/uuid"
)

type ForumPost struct {
	BaseUUIDModel
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Title  string    `gorm:"type:text;not null"       json:"title"`
	Body   string    `gorm:"type:text;not null"       json:"body"`
	Tag    string    `gorm:"type:text;index"          json:"tag"`
	Pinned bool      `gorm:"type:bool;default:false"  json:"pinned"`

	User     *User          `gorm:"foreignKey:UserID" json:"author,omitempty"`
	Comments []ForumComment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

type ForumComment struct {
	BaseUUIDModel
	PostID uuid.UUID `gorm:"type:uuid;index;not null" json:"postId"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Body   string    `gorm:"type:text;not null"       json:"body"`

	User *User `gorm:"foreignKey:UserID" json:"author,omitempty"`
}

type ForumPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
}

type ForumCommentRequest struct {
	Body string `json:"body"`
}
