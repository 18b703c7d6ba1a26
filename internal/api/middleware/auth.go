package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

const (
	// HeaderUserID идентификатор вызывающего, проставляется шлюзом
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль вызывающего: client или admin
	HeaderUserRole = "X-User-Role"
)

type identityKey struct{}

// Identity аутентифицированный вызывающий запроса
type Identity struct {
	UserID int64
	Role   domain.Actor
}

// Actor возвращает роль вызывающего как актора жизненного цикла
func (i Identity) Actor() domain.Actor {
	return i.Role
}

// Ref возвращает вызывающего как участника бронирования
func (i Identity) Ref() domain.ParticipantRef {
	return domain.ParticipantRef{ID: i.UserID, Kind: domain.ParticipantKindClient}
}

// IsAdmin возвращает true для администратора
func (i Identity) IsAdmin() bool {
	return i.Role == domain.ActorAdmin
}

// Auth извлекает идентичность вызывающего из заголовков запроса
// Запросы без корректного X-User-ID отклоняются
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "отсутствует или некорректен заголовок X-User-ID")
			return
		}

		role := domain.ActorClient
		if r.Header.Get(HeaderUserRole) == string(domain.ActorAdmin) {
			role = domain.ActorAdmin
		}

		identity := Identity{UserID: userID, Role: role}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// WithIdentity кладет идентичность в контекст
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext достает идентичность вызывающего из контекста
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}
