package bot

import (
	"strconv"

	"github.com/yevhenkap/tixjar/internal/domain"
)

func mainMenuKeyboard() [][]string {
	return [][]string{{btnEvents}, {btnHelp}}
}

func eventKeyboard(events []domain.Event) [][]string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{e.Label()})
	}
	return rows
}

func quantityKeyboard() [][]string {
	rows := make([][]string, 0, 5)
	for i := 1; i <= 5; i++ {
		rows = append(rows, []string{strconv.Itoa(i)})
	}
	return rows
}

func paymentMethodKeyboard() [][]string {
	return [][]string{{btnPayJar}, {btnPayInvoice}}
}

func confirmationKeyboard() [][]string {
	return [][]string{{btnPaid}, {btnCancel}}
}
