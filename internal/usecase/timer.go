package usecase

import "time"

// SessionTimer mede o tempo de parede de uma sessão ativa. Tick é leitura
// pura do relógio: não mexe em fila nem cursor, então não corre contra as
// ações do operador.
type SessionTimer struct {
	now       func() time.Time
	startedAt time.Time
	elapsed   time.Duration
	running   bool
}

func NewSessionTimer(now func() time.Time) *SessionTimer {
	if now == nil {
		now = time.Now
	}
	return &SessionTimer{now: now}
}

// Start zera o decorrido e marca o instante inicial.
func (t *SessionTimer) Start() {
	t.startedAt = t.now()
	t.elapsed = 0
	t.running = true
}

// Tick recalcula o decorrido a partir do relógio. Nunca regride.
func (t *SessionTimer) Tick() time.Duration {
	if t.running {
		if e := t.now().Sub(t.startedAt); e > t.elapsed {
			t.elapsed = e
		}
	}
	return t.elapsed
}

// Stop congela o decorrido no último valor calculado. Idempotente.
func (t *SessionTimer) Stop() {
	if !t.running {
		return
	}
	t.Tick()
	t.running = false
}

func (t *SessionTimer) Running() bool {
	return t.running
}

func (t *SessionTimer) ElapsedSeconds() int {
	return int(t.elapsed / time.Second)
}
