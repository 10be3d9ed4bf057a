package sqlstore

import "time"

// userRecord is the user table row
type userRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Username  string    `gorm:"size:250;not null;uniqueIndex"`
	Email     string    `gorm:"size:250;not null;uniqueIndex"`
	Name      string    `gorm:"size:250;not null"`
	Password  string    `gorm:"size:250;not null"`
	CreatedOn time.Time `gorm:"autoCreateTime"`
}

func (userRecord) TableName() string { return "user" }

type planetRecord struct {
	ID         int64   `gorm:"primaryKey;autoIncrement:false"`
	Name       string  `gorm:"size:250;not null"`
	Climate    *string `gorm:"size:250"`
	Terrain    *string `gorm:"size:250"`
	Population *int64
}

func (planetRecord) TableName() string { return "planet" }

type characterRecord struct {
	ID        int64   `gorm:"primaryKey;autoIncrement:false"`
	Name      string  `gorm:"size:250;not null"`
	Species   *string `gorm:"size:250"`
	Homeworld *string `gorm:"size:250"`
}

func (characterRecord) TableName() string { return "character" }

type vehicleRecord struct {
	ID    int64   `gorm:"primaryKey;autoIncrement:false"`
	Name  string  `gorm:"size:250;not null"`
	Model *string `gorm:"size:250"`
	HP    *int64  `gorm:"column:hp"`
}

func (vehicleRecord) TableName() string { return "vehicle" }

// Favorite join tables. The composite primary key allows one row per pair and
// the foreign keys remove rows when either side is deleted.

type favoritePlanetRecord struct {
	UserID    int64        `gorm:"primaryKey;autoIncrement:false"`
	PlanetID  int64        `gorm:"primaryKey;autoIncrement:false"`
	CreatedOn time.Time    `gorm:"autoCreateTime"`
	User      userRecord   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Planet    planetRecord `gorm:"foreignKey:PlanetID;constraint:OnDelete:CASCADE"`
}

func (favoritePlanetRecord) TableName() string { return "favorite_planet" }

type favoriteCharacterRecord struct {
	UserID      int64           `gorm:"primaryKey;autoIncrement:false"`
	CharacterID int64           `gorm:"primaryKey;autoIncrement:false"`
	CreatedOn   time.Time       `gorm:"autoCreateTime"`
	User        userRecord      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Character   characterRecord `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE"`
}

func (favoriteCharacterRecord) TableName() string { return "favorite_character" }

type favoriteVehicleRecord struct {
	UserID    int64         `gorm:"primaryKey;autoIncrement:false"`
	VehicleID int64         `gorm:"primaryKey;autoIncrement:false"`
	CreatedOn time.Time     `gorm:"autoCreateTime"`
	User      userRecord    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Vehicle   vehicleRecord `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE"`
}

func (favoriteVehicleRecord) TableName() string { return "favorite_vehicle" }

// favoriteRow is the kind-independent projection of a join table row
type favoriteRow struct {
	UserID    int64
	EntityID  int64
	CreatedOn time.Time
}

// allRecords lists every table in dependency order for AutoMigrate
func allRecords() []interface{} {
	return []interface{}{
		&userRecord{},
		&planetRecord{},
		&characterRecord{},
		&vehicleRecord{},
		&favoritePlanetRecord{},
		&favoriteCharacterRecord{},
		&favoriteVehicleRecord{},
	}
}
