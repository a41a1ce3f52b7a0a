package services

import (
	"os"
	"testing"

	"github.com/DrHac-GH/firstrade-tax-app/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}
