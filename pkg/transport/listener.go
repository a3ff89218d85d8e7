package transport

import (
	"time"

	"go.uber.org/zap"
)

// Event descreve uma tentativa de requisição
type Event struct {
	RequestID  string
	Method     string
	URL        string
	Attempt    int
	StatusCode int           // 0 quando nenhuma resposta foi recebida
	Duration   time.Duration // zero em OnRequest
	Err        error
}

// Listener recebe o ciclo de vida de cada tentativa.
// As chamadas são best-effort: panics são contidos e nada do que o listener
// faz altera o fluxo de retentativas ou os erros devolvidos.
type Listener interface {
	// OnRequest é chamado antes do envio
	OnRequest(Event)
	// OnResponse é chamado para respostas com status < 400
	OnResponse(Event)
	// OnRequestError é chamado quando nenhuma resposta foi recebida
	OnRequestError(Event)
	// OnResponseError é chamado para respostas com status >= 400
	OnResponseError(Event)
}

// ListenerFuncs adapta funções avulsas em um Listener; campos nil são ignorados
type ListenerFuncs struct {
	Request       func(Event)
	Response      func(Event)
	RequestError  func(Event)
	ResponseError func(Event)
}

// OnRequest chama Request, se definido
func (f ListenerFuncs) OnRequest(e Event) {
	if f.Request != nil {
		f.Request(e)
	}
}

// OnResponse chama Response, se definido
func (f ListenerFuncs) OnResponse(e Event) {
	if f.Response != nil {
		f.Response(e)
	}
}

// OnRequestError chama RequestError, se definido
func (f ListenerFuncs) OnRequestError(e Event) {
	if f.RequestError != nil {
		f.RequestError(e)
	}
}

// OnResponseError chama ResponseError, se definido
func (f ListenerFuncs) OnResponseError(e Event) {
	if f.ResponseError != nil {
		f.ResponseError(e)
	}
}

// Listeners distribui cada evento para todos os listeners, em ordem.
// Um panic em um listener não impede os seguintes; o primeiro panic é
// relançado ao final da distribuição.
type Listeners []Listener

// OnRequest repassa o evento a cada listener
func (ls Listeners) OnRequest(e Event) {
	ls.each(func(l Listener) { l.OnRequest(e) })
}

// OnResponse repassa o evento a cada listener
func (ls Listeners) OnResponse(e Event) {
	ls.each(func(l Listener) { l.OnResponse(e) })
}

// OnRequestError repassa o evento a cada listener
func (ls Listeners) OnRequestError(e Event) {
	ls.each(func(l Listener) { l.OnRequestError(e) })
}

// OnResponseError repassa o evento a cada listener
func (ls Listeners) OnResponseError(e Event) {
	ls.each(func(l Listener) { l.OnResponseError(e) })
}

func (ls Listeners) each(fn func(Listener)) {
	var first any
	for _, l := range ls {
		func() {
			defer func() {
				if r := recover(); r != nil && first == nil {
					first = r
				}
			}()
			fn(l)
		}()
	}
	if first != nil {
		panic(first)
	}
}

// ZapListener registra os eventos em um zap.Logger
type ZapListener struct {
	logger *zap.Logger
}

// NewZapListener cria um listener que loga em logger
func NewZapListener(logger *zap.Logger) *ZapListener {
	return &ZapListener{logger: logger}
}

func (l *ZapListener) fields(e Event) []zap.Field {
	fields := []zap.Field{
		zap.String("request_id", e.RequestID),
		zap.String("method", e.Method),
		zap.String("url", e.URL),
		zap.Int("attempt", e.Attempt),
	}
	if e.StatusCode != 0 {
		fields = append(fields, zap.Int("status", e.StatusCode))
	}
	if e.Duration > 0 {
		fields = append(fields, zap.Duration("duration", e.Duration))
	}
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
	}
	return fields
}

// OnRequest loga o envio em debug
func (l *ZapListener) OnRequest(e Event) {
	l.logger.Debug("membros request", l.fields(e)...)
}

// OnResponse loga a resposta em debug
func (l *ZapListener) OnResponse(e Event) {
	l.logger.Debug("membros response", l.fields(e)...)
}

// OnRequestError loga a falha de rede em warn
func (l *ZapListener) OnRequestError(e Event) {
	l.logger.Warn("membros request failed", l.fields(e)...)
}

// OnResponseError loga a resposta de erro em warn
func (l *ZapListener) OnResponseError(e Event) {
	l.logger.Warn("membros response error", l.fields(e)...)
}
