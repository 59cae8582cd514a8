package retry

import (
	"context"
	"errors"
	"time"
)

// Policy параметры повторов
type Policy struct {
	// Attempts общее число попыток, включая первую
	Attempts int
	// Delay пауза перед второй попыткой, далее удваивается
	Delay time.Duration
	// MaxDelay верхняя граница паузы (0 - без ограничения)
	MaxDelay time.Duration
}

// DefaultPolicy три попытки с паузой 100ms, 200ms
var DefaultPolicy = Policy{Attempts: 3, Delay: 100 * time.Millisecond, MaxDelay: time.Second}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent помечает ошибку как неповторяемую
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do вызывает fn, пока она не вернет nil, не закончатся попытки или не отменится ctx.
// Ошибка, обернутая в Permanent, прерывает повторы и возвращается без обёртки.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.Delay

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}

		if i == attempts-1 {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}

		delay *= 2
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return err
}
