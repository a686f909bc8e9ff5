package manage_appointments

// DeleteCancelledResponse количество удалённых отменённых записей
type DeleteCancelledResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}
