package auth

// User maps the legacy users table. Rows are created by the admin tool;
// this service only ever reads them.
type User struct {
	UserID   int    `gorm:"column:user_id;primaryKey;autoIncrement"`
	UserName string `gorm:"column:user_name"`
	Password string `gorm:"column:pass"`
	Status   int    `gorm:"column:status"`
	BioID    int    `gorm:"column:bio_id"`
}

func (User) TableName() string {
	return "users"
}

// StatusEnabled is the only status value allowed to log in.
const StatusEnabled = 1
