package game

import "time"

// EventType identifies a game event with type safety.
type EventType string

// Event types emitted during one move's resolution, in the order they
// occur. They exist for observability (logging, UI, wire protocol);
// the engine never reads them back.
const (
	EventTypePickup           EventType = "pickup"
	EventTypeDrop             EventType = "drop"
	EventTypeCapture          EventType = "capture"
	EventTypeForbiddenCapture EventType = "forbidden_capture"
	EventTypeScoreUpdate      EventType = "score_update"
	EventTypeEndGame          EventType = "end_game"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}

// ActionEvent is any event produced while resolving a move.
type ActionEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// PickupEvent records all movable tokens being lifted from a pit
// before a sowing walk.
type PickupEvent struct {
	Pos       Pit
	Pieces    []Token
	timestamp time.Time
}

func (e PickupEvent) EventType() EventType { return EventTypePickup }
func (e PickupEvent) Timestamp() time.Time { return e.timestamp }

// NewPickupEvent creates a pickup event, copying the piece slice.
func NewPickupEvent(pos Pit, pieces []Token) PickupEvent {
	return PickupEvent{
		Pos:       pos,
		Pieces:    append([]Token(nil), pieces...),
		timestamp: time.Now(),
	}
}

// DropEvent records a single token landing in a pit during a sowing
// walk.
type DropEvent struct {
	From      Pit
	To        Pit
	Piece     Token
	timestamp time.Time
}

func (e DropEvent) EventType() EventType { return EventTypeDrop }
func (e DropEvent) Timestamp() time.Time { return e.timestamp }

// NewDropEvent creates a drop event.
func NewDropEvent(from, to Pit, piece Token) DropEvent {
	return DropEvent{
		From:      from,
		To:        to,
		Piece:     piece,
		timestamp: time.Now(),
	}
}

// CaptureEvent records a pit being emptied for score. Team is the
// owner of the first captured piece, matching the historical log
// format; individual pieces still score to their own owners.
type CaptureEvent struct {
	Pos       Pit
	Team      Side
	Pieces    []Token
	timestamp time.Time
}

func (e CaptureEvent) EventType() EventType { return EventTypeCapture }
func (e CaptureEvent) Timestamp() time.Time { return e.timestamp }

// NewCaptureEvent creates a capture event, copying the piece slice.
func NewCaptureEvent(pos Pit, team Side, pieces []Token) CaptureEvent {
	return CaptureEvent{
		Pos:       pos,
		Team:      team,
		Pieces:    append([]Token(nil), pieces...),
		timestamp: time.Now(),
	}
}

// ForbiddenCaptureEvent records a capture attempt that the mandarin
// guard rule rejected, halting resolution.
type ForbiddenCaptureEvent struct {
	Pos       Pit
	Reason    string
	Pieces    []Token
	timestamp time.Time
}

func (e ForbiddenCaptureEvent) EventType() EventType { return EventTypeForbiddenCapture }
func (e ForbiddenCaptureEvent) Timestamp() time.Time { return e.timestamp }

// NewForbiddenCaptureEvent creates a forbidden-capture event.
func NewForbiddenCaptureEvent(pos Pit, reason string, pieces []Token) ForbiddenCaptureEvent {
	return ForbiddenCaptureEvent{
		Pos:       pos,
		Reason:    reason,
		Pieces:    append([]Token(nil), pieces...),
		timestamp: time.Now(),
	}
}

// ScoreUpdateEvent records both scores after a capture.
type ScoreUpdateEvent struct {
	Score     map[Side]int
	timestamp time.Time
}

func (e ScoreUpdateEvent) EventType() EventType { return EventTypeScoreUpdate }
func (e ScoreUpdateEvent) Timestamp() time.Time { return e.timestamp }

// NewScoreUpdateEvent creates a score-update event from a score copy.
func NewScoreUpdateEvent(score map[Side]int) ScoreUpdateEvent {
	s := make(map[Side]int, len(score))
	for k, v := range score {
		s[k] = v
	}
	return ScoreUpdateEvent{Score: s, timestamp: time.Now()}
}

// EndGameEvent records that the committed move ended the game.
type EndGameEvent struct {
	Reason     string
	FinalScore map[Side]int
	timestamp  time.Time
}

func (e EndGameEvent) EventType() EventType { return EventTypeEndGame }
func (e EndGameEvent) Timestamp() time.Time { return e.timestamp }

// NewEndGameEvent creates an end-game event from a score copy.
func NewEndGameEvent(reason string, finalScore map[Side]int) EndGameEvent {
	s := make(map[Side]int, len(finalScore))
	for k, v := range finalScore {
		s[k] = v
	}
	return EndGameEvent{Reason: reason, FinalScore: s, timestamp: time.Now()}
}

// EventSubscriber can subscribe to game events.
type EventSubscriber interface {
	OnEvent(event ActionEvent)
}

// EventBus manages event publishing and subscription.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event ActionEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus.
func NewEventBus() EventBus {
	return &SimpleEventBus{subscribers: make([]EventSubscriber, 0)}
}

// Subscribe adds a subscriber to receive events.
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers.
func (bus *SimpleEventBus) Publish(event ActionEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
