package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const TextbookCollection = "textbooks"

// Textbook запись об учебнике в MongoDB (append-only со стороны бота)
type Textbook struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Subject  string             `json:"subject" bson:"subject"`
	FileName string             `json:"file_name" bson:"file_name"`
	FileID   string             `json:"file_id" bson:"file_id"`
}
