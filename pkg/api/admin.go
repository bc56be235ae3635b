package api

// RestoreMemberRequest представляет запрос на восстановление удаленного аккаунта
type RestoreMemberRequest struct {
	MemberNo int64 `json:"memberNo"` // номер восстанавливаемого аккаунта
}

// RestoreBoardRequest представляет запрос на восстановление удаленного поста
type RestoreBoardRequest struct {
	BoardNo int64 `json:"boardNo"` // номер восстанавливаемого поста
}

// CreateAdminRequest представляет запрос на выпуск аккаунта администратора
type CreateAdminRequest struct {
	MemberEmail    string `json:"memberEmail"`    // email нового администратора
	MemberNickname string `json:"memberNickname"` // никнейм
	MemberTel      string `json:"memberTel"`      // телефон
}

// CreateAdminResponse представляет ответ с одноразовым паролем нового администратора
type CreateAdminResponse struct {
	MemberEmail string `json:"memberEmail"` // email созданного аккаунта
	Password    string `json:"password"`    // сгенерированный пароль, показывается один раз
}
