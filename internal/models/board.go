package models

// Board представляет запись форума в административных выборках
type Board struct {
	BoardNo        int64  `json:"boardNo"`        // номер поста (PK)
	BoardName      string `json:"boardName"`      // название раздела
	BoardTitle     string `json:"boardTitle"`     // заголовок поста
	MemberNickname string `json:"memberNickname"` // никнейм автора
	ReadCount      int64  `json:"readCount"`      // количество просмотров
	LikeCount      int64  `json:"likeCount"`      // количество лайков
	CommentCount   int64  `json:"commentCount"`   // количество комментариев
	BoardDelFl     string `json:"boardDelFl"`     // флаг удаления ("Y"/"N")
}
