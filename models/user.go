package models

// User is a staff member (waiter) who creates orders. Rows are seeded by the
// external admin tool; this service only reads them.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"column:nombre;not null" json:"nombre"`
	Username string `gorm:"column:username;uniqueIndex;not null" json:"username"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "usuarios"
}
