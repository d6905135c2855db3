package kafka

import (
	"strconv"
	"time"

	"github.com/DRSN-tech/solar-store/internal/store"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ChangeEvent — сообщение об изменении витрины, отправляемое в Kafka.
type ChangeEvent struct {
	ID          string
	Op          store.Op
	ProductID   int64
	OccurredAt  time.Time
	CartLines   int
	CatalogSize int
}

func NewChangeEvent(ev store.Event, now time.Time) ChangeEvent {
	return ChangeEvent{
		ID:          uuid.NewString(),
		Op:          ev.Op,
		ProductID:   ev.ProductID,
		OccurredAt:  now.UTC(),
		CartLines:   len(ev.State.Cart),
		CatalogSize: len(ev.State.Products),
	}
}

// Key возвращает ключ партиционирования: id продукта либо имя операции для событий без продукта.
func (c ChangeEvent) Key() []byte {
	if c.ProductID != 0 {
		return []byte(strconv.FormatInt(c.ProductID, 10))
	}
	return []byte(c.Op)
}

// Marshal кодирует событие как google.protobuf.Struct.
func (c ChangeEvent) Marshal() ([]byte, error) {
	payload, err := structpb.NewStruct(map[string]any{
		"event_id":     c.ID,
		"op":           string(c.Op),
		"product_id":   c.ProductID,
		"occurred_at":  c.OccurredAt.Format(time.RFC3339Nano),
		"cart_lines":   c.CartLines,
		"catalog_size": c.CatalogSize,
	})
	if err != nil {
		return nil, err
	}

	return proto.Marshal(payload)
}
