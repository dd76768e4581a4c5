package domain

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&User{},
		&Room{},
		&Customer{},
		&ExtraService{},
		&Booking{},
		&Invoice{},
		&RoomStatusLog{},
	}
}
