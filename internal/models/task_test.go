package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTaskMarshalJSON(t *testing.T) {
	created := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	task := Task{
		ID:          "t1",
		Title:       "Buy milk",
		Description: "2%",
		CreatedAt:   created,
		UserID:      "u1",
	}

	body, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["created_at"] != "2024-03-15 09:30:00" {
		t.Errorf("created_at = %v, want formatted timestamp", got["created_at"])
	}
	if got["due_date"] != nil {
		t.Errorf("due_date = %v, want null", got["due_date"])
	}
	if got["completed"] != false {
		t.Errorf("completed = %v, want false", got["completed"])
	}
	if _, ok := got["user_id"]; ok {
		t.Error("user_id leaked into the serialized task")
	}

	due := time.Date(2024, 4, 1, 17, 0, 0, 0, time.UTC)
	task.DueDate = &due
	body, err = json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal with due date: %v", err)
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["due_date"] != "2024-04-01 17:00:00" {
		t.Errorf("due_date = %v, want formatted timestamp", got["due_date"])
	}
}

func TestUserPublicOmitsCredentials(t *testing.T) {
	token := "secret-token"
	u := User{
		ID:        "u1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "$2a$10$hash",
		Token:     &token,
	}

	body, err := json.Marshal(u.Public())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"password", "token", "email"} {
		if _, ok := got[field]; ok {
			t.Errorf("%s leaked into the public user", field)
		}
	}
	if got["firstName"] != "Ada" || got["username"] != "ada" {
		t.Errorf("unexpected public shape: %v", got)
	}
}
