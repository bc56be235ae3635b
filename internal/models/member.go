package models

import "time"

// Authority уровни доступа аккаунта
const (
	AuthorityMember = 1 // обычный пользователь
	AuthorityAdmin  = 2 // администратор
)

// Member представляет аккаунт пользователя сайта
type Member struct {
	MemberNo       int64     `json:"memberNo"`       // номер аккаунта (PK)
	MemberEmail    string    `json:"memberEmail"`    // уникальный email, используется как subject токена
	MemberNickname string    `json:"memberNickname"` // отображаемое имя
	MemberTel      string    `json:"memberTel"`      // телефон
	MemberPw       string    `json:"-"`              // bcrypt хеш пароля, никогда не сериализуется
	Authority      int       `json:"authority"`      // уровень доступа
	MemberDelFl    string    `json:"memberDelFl"`    // флаг удаления аккаунта ("Y"/"N")
	EnrollDate     time.Time `json:"enrollDate"`     // дата регистрации
}
