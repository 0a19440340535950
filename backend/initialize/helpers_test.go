package initialize

import (
	"context"
	"strconv"
	"testing"
	"time"

	"jewel-lending/backend/app/models"
	"jewel-lending/backend/app/services"

	"github.com/stretchr/testify/require"
)

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func registerInput(email string) services.RegisterInput {
	return services.RegisterInput{Name: "U", Email: email, Password: "pw"}
}

func borrowInput(userID, jewelID uint, start time.Time) services.BorrowInput {
	return services.BorrowInput{UserID: userID, JewelID: jewelID, Start: start, End: start.Add(2 * time.Hour)}
}

func createJewel(t *testing.T, app *App, count int) *models.Jewel {
	t.Helper()
	j, err := app.Jewels.Create(context.Background(), services.JewelInput{Name: "Pearl", PricePerHour: 5, FinePerHour: 1, Count: count}, nil)
	require.NoError(t, err)
	return j
}
