package domain

import "time"

type MedicalFile struct {
	FileID    string    `json:"id" dynamodbav:"file_id"`
	PatientID string    `json:"patientId" dynamodbav:"patient_id"`
	Object    string    `json:"object" dynamodbav:"object"`
	Name      string    `json:"name" dynamodbav:"name"`
	Type      string    `json:"type" dynamodbav:"type"`
	Size      int64     `json:"size" dynamodbav:"size"`
	Hash      string    `json:"hash" dynamodbav:"hash"`
	URL       string    `json:"url" dynamodbav:"url"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}
