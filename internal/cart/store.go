package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"tienda_back_end/internal/models"
)

// ErrNotFound indica que el usuario todavía no tiene carrito guardado.
var ErrNotFound = errors.New("carrito inexistente")

// Feed emite una señal por cada mutación del carrito de un usuario. El
// canal se cierra al cancelar la suscripción; una señal solo avisa "cambió",
// el estado se relee del Store.
type Feed interface {
	Subscribe(ctx context.Context, userID string) (<-chan struct{}, func())
}

// Store es el almacenamiento opaco del carrito: una lista de líneas
// serializada por usuario. Update aplica la mutación de forma atómica por
// clave de usuario, para que dos requests concurrentes no se pisen.
type Store interface {
	Get(ctx context.Context, userID string) ([]models.CartItem, error)
	Update(ctx context.Context, userID string, fn func([]models.CartItem) []models.CartItem) ([]models.CartItem, error)
	Exists(ctx context.Context, userID string) (bool, error)
	Delete(ctx context.Context, userID string) error
}

const (
	cartTTL        = 30 * 24 * time.Hour
	updateAttempts = 5
)

// RedisStore guarda cada carrito como un array JSON bajo "cart:<userID>".
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// Get devuelve las líneas guardadas. Un JSON corrupto se trata como carrito
// vacío: se loguea y se sigue, nunca se le muestra el error al cliente.
func (s *RedisStore) Get(ctx context.Context, userID string) ([]models.CartItem, error) {
	data, err := s.client.Get(ctx, cartKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeItems(userID, data), nil
}

func (s *RedisStore) Exists(ctx context.Context, userID string) (bool, error) {
	n, err := s.client.Exists(ctx, cartKey(userID)).Result()
	return n > 0, err
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	n, err := s.client.Del(ctx, cartKey(userID)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	s.client.Publish(ctx, cartKey(userID), "cleared")
	return nil
}

// Subscribe escucha el canal Pub/Sub del carrito y lo traduce a señales.
func (s *RedisStore) Subscribe(ctx context.Context, userID string) (<-chan struct{}, func()) {
	pubsub := s.client.Subscribe(ctx, cartKey(userID))
	out := make(chan struct{}, 1)

	go func() {
		defer close(out)
		for range pubsub.Channel() {
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}()

	return out, func() { _ = pubsub.Close() }
}

// Update ejecuta fn sobre el estado actual dentro de una transacción
// optimista (WATCH). Si otra request modificó la clave en el medio, se
// reintenta con el estado fresco.
func (s *RedisStore) Update(ctx context.Context, userID string, fn func([]models.CartItem) []models.CartItem) ([]models.CartItem, error) {
	key := cartKey(userID)
	var result []models.CartItem

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		items := []models.CartItem{}
		if data != "" {
			items = decodeItems(userID, data)
		}

		items = fn(items)
		payload, err := json.Marshal(items)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, cartTTL)
			pipe.Publish(ctx, key, "updated")
			return nil
		})
		if err == nil {
			result = items
		}
		return err
	}

	for i := 0; i < updateAttempts; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, errors.New("demasiados reintentos actualizando el carrito")
}

func encodeItems(items []models.CartItem) (string, error) {
	b, err := json.Marshal(items)
	return string(b), err
}

func decodeItems(userID, data string) []models.CartItem {
	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		log.Printf("⚠️ Carrito corrupto para %s, se arranca de cero: %v", userID, err)
		return []models.CartItem{}
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items
}
