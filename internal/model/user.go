package model

// ==================== 账号 ====================

// Admin 后台管理员
type Admin struct {
	BaseModel
	Username string `gorm:"size:50;unique" json:"username"`
	Password string `gorm:"size:255" json:"-"`
}

func (Admin) TableName() string { return "admins" }

// User 前台用户
type User struct {
	BaseModel
	Name     string `gorm:"size:100" json:"name"`
	Email    string `gorm:"size:100;unique" json:"email"`
	Password string `gorm:"size:255" json:"-"`
}

func (User) TableName() string { return "users" }
