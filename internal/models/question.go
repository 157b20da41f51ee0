package models

// Question.Category holds the stored category id. The public API speaks a
// 0-indexed category, so the stored value is always the API value plus one.
type Question struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Question   string `gorm:"type:text;not null" json:"question"`
	Answer     string `gorm:"type:text;not null" json:"answer"`
	Category   uint   `gorm:"not null;index" json:"category"`
	Difficulty int    `gorm:"not null" json:"difficulty"`
}

// StoredCategoryID converts a 0-indexed API category to the stored id.
func StoredCategoryID(apiCategory int) uint {
	return uint(apiCategory + 1)
}
