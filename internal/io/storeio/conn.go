package storeio

import (
	"fmt"
	"log/slog"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/pkg/config"
	"github.com/springsdata/springsync/pkg/io/modelio"
)

func dbURI(cfg config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8&parseTime=true",
		cfg.MyUser, cfg.MyPass, cfg.MyHost, 3306, cfg.MyDB)
}

func (s *storeio) migrate() error {
	grm, err := gorm.Open("mysql", dbURI(s.cfg))
	if err != nil {
		return &recon.PersistenceError{Op: "open migration connection", Err: err}
	}
	defer grm.Close()

	slog.Info("Running initial database migrations")
	m := modelio.New(grm)
	if err = m.Migrate(); err != nil {
		return &recon.PersistenceError{Op: "migrate schema", Err: err}
	}
	slog.Info("Database migrations completed")
	return nil
}
