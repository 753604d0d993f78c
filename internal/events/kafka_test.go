package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	domain "fiturae/internal/domain/workout"
	"fiturae/pkg/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := newKafkaPublisher(writer, "fiturae.workouts", logger.Nop())

	w := &domain.Workout{
		ID:          "w1",
		UserID:      "u1",
		Name:        "Legs",
		Day:         domain.Friday,
		Description: "d",
	}
	require.NoError(t, p.Publish(context.Background(), NewWorkoutEvent(WorkoutCreated, w)))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	require.Equal(t, "w1", string(msg.Key))
	require.Equal(t, "event-type", msg.Headers[0].Key)
	require.Equal(t, WorkoutCreated, string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	require.Equal(t, "workout.created", decoded["type"])
	require.Equal(t, "u1", decoded["userId"])
	snapshot := decoded["workout"].(map[string]any)
	require.Equal(t, "FRIDAY", snapshot["day"])
	require.Equal(t, []any{}, snapshot["plan"])
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unavailable")}
	p := newKafkaPublisher(writer, "fiturae.workouts", logger.Nop())

	err := p.Publish(context.Background(), NewDeletedEvent("w1"))
	require.Error(t, err)
	require.ErrorIs(t, err, writer.err)
}

func TestKafkaPublisher_Close(t *testing.T) {
	writer := &fakeWriter{}
	p := newKafkaPublisher(writer, "t", logger.Nop())
	require.NoError(t, p.Close())
	require.True(t, writer.closed)
}

func TestNewDeletedEvent_OmitsSnapshot(t *testing.T) {
	raw, err := json.Marshal(NewDeletedEvent("w9"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "w9", decoded["workoutId"])
	require.NotContains(t, decoded, "workout")
	require.NotContains(t, decoded, "userId")
}
