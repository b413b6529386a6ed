// Package store keeps an optional MySQL record of executed liquidity
// operations. It is enabled only when a database is configured; the
// pipeline runs without it.
package store

import (
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tasiov/mantis-raydium/errs"
)

// Execution is one submitted liquidity transaction.
type Execution struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	Signature   string `gorm:"type:varchar(120);not null"`
	Pool        string `gorm:"type:varchar(48);not null"`
	Operation   string `gorm:"type:varchar(16);not null"`
	BaseAmount  uint64 `gorm:"not null"`
	QuoteAmount uint64 `gorm:"not null"`
	LpAmount    uint64 `gorm:"not null"`
	SendTime    int64  `gorm:"not null"`
}

type Dao struct {
	db *gorm.DB
}

func NewDao(url, scheme, user, passwd string) (*Dao, error) {
	gormLogger := logger.Default.LogMode(logger.Warn)
	db, err := gorm.Open(mysql.Open(user+":"+passwd+"@tcp("+url+")/"+
		scheme+"?charset=utf8&parseTime=True"), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, errors.Wrapf(errs.ErrConfig, "open execution store: %s", err)
	}
	if err := db.AutoMigrate(&Execution{}); err != nil {
		return nil, errors.Wrapf(errs.ErrConfig, "migrate execution store: %s", err)
	}
	return &Dao{db: db}, nil
}

func (dao *Dao) SaveExecution(exec *Execution) error {
	return dao.db.Create(exec).Error
}

func (dao *Dao) SelectExecutions(pool string) ([]*Execution, error) {
	executions := make([]*Execution, 0)
	res := dao.db.Where("pool = ?", pool).Find(&executions)
	return executions, res.Error
}
