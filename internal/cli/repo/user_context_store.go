package repo

// UserContextStore хранит логин, под которым выполнен последний вход.
type UserContextStore interface {
	SaveLogin(login string) error
	LoadLogin() (string, error)
	ClearLogin() error
}

// SessionStore объединяет токен и контекст пользователя.
type SessionStore interface {
	TokenStore
	UserContextStore
}
