package model

// Profile строка профиля текущего пользователя.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UploadedImage ответ сервера на загрузку картинки.
type UploadedImage struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}
