package contact

import (
	"strings"
	"testing"
	"time"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/apperr"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func sampleInput() MessageInput {
	return MessageInput{
		Name:    "Fatema Begum",
		Phone:   "01812345678",
		Subject: "Group discount for Sajek",
		Message: "We are a group of 8, is there a discount for the December departure?",
	}
}

func TestNewMessage(t *testing.T) {
	now := time.Now()
	msg, err := newMessage(sampleInput(), now)
	require.NoError(t, err)

	assert.Equal(t, "Fatema Begum", msg.Name)
	assert.Equal(t, models.MessageStatusNew, msg.Status)
	assert.Len(t, msg.MessageID, 14)
	assert.Equal(t, now, msg.CreatedAt)
}

func TestNewMessageTrimsFields(t *testing.T) {
	in := sampleInput()
	in.Name = "  Fatema Begum  "
	in.Subject = " Group discount \n"

	msg, err := newMessage(in, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Fatema Begum", msg.Name)
	assert.Equal(t, "Group discount", msg.Subject)
}

func TestNewMessageStatusAlwaysNew(t *testing.T) {
	// There is no way for the submitter to pick a status; every inquiry
	// enters the inbox as new.
	msg, err := newMessage(sampleInput(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusNew, msg.Status)
}

func TestNewMessageOptionalEmail(t *testing.T) {
	in := sampleInput()
	msg, err := newMessage(in, time.Now())
	require.NoError(t, err)
	assert.Empty(t, msg.Email)

	in.Email = "fatema@example.com"
	msg, err = newMessage(in, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "fatema@example.com", msg.Email)

	in.Email = "not-an-email"
	_, err = newMessage(in, time.Now())
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAutoReadMatchesOnlyNew(t *testing.T) {
	now := time.Now()
	filter, update := autoRead("msg1", now)

	// The filter pins status to new: a message already read, replied or
	// archived matches nothing, so repeated views cannot transition twice.
	assert.Equal(t, bson.M{"messageid": "msg1", "status": models.MessageStatusNew}, filter)
	assert.Equal(t, bson.M{"$set": bson.M{"status": models.MessageStatusRead, "updated_at": now}}, update)

	for _, s := range []string{models.MessageStatusRead, models.MessageStatusReplied, models.MessageStatusArchived} {
		assert.NotEqual(t, s, filter["status"])
	}
}

func TestNewMessageRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MessageInput)
		field  string
	}{
		{"missing name", func(in *MessageInput) { in.Name = " " }, "name"},
		{"name too long", func(in *MessageInput) { in.Name = strings.Repeat("x", 101) }, "name"},
		{"missing phone", func(in *MessageInput) { in.Phone = "" }, "phone"},
		{"phone too long", func(in *MessageInput) { in.Phone = strings.Repeat("1", 21) }, "phone"},
		{"missing subject", func(in *MessageInput) { in.Subject = "" }, "subject"},
		{"subject too long", func(in *MessageInput) { in.Subject = strings.Repeat("x", 201) }, "subject"},
		{"missing message", func(in *MessageInput) { in.Message = "  " }, "message"},
		{"message too long", func(in *MessageInput) { in.Message = strings.Repeat("x", 1001) }, "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleInput()
			tt.mutate(&in)
			_, err := newMessage(in, time.Now())
			require.Error(t, err)

			var ae *apperr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.field, ae.Field)
		})
	}
}
