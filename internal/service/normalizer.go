package service

import (
	"fmt"
	"strconv"

	"github.com/mlefebvre/banking-txn-api/internal/domain"
	"github.com/mlefebvre/banking-txn-api/internal/infra/dataset"
)

// normalizeRow maps one raw table row to the canonical API record. It is a
// pure projection: it synthesizes missing fields, collapses sentinel values,
// and never touches the source table.
//
// The sentinel collapse (0 / "0" / filled-missing → absent) applies to
// merchant_state and errors only. That is a deliberate simplification of the
// source data, scoped to exactly those two fields so that legitimate zeros
// elsewhere (a zero-amount transaction, say) survive.
func normalizeRow(t *dataset.Table, row dataset.Row) domain.TransactionRecord {
	amount, _ := row.Float("amount")

	rec := domain.TransactionRecord{
		ID:              "0",
		Date:            row.String("date"),
		Amount:          amount,
		FormattedAmount: fmt.Sprintf("%.2f €", amount),
	}

	// id and date are always strings in the output, whatever the input type.
	if t.HasColumn("id") {
		rec.ID = row.String("id")
	}

	// type: prefer an explicit column, fall back to use_chip, else a fixed
	// marker.
	switch {
	case t.HasColumn("type"):
		rec.Type = row.String("type")
	case t.HasColumn("use_chip"):
		rec.Type = row.String("use_chip")
	default:
		rec.Type = "Unknown Transaction"
	}

	rec.NameOrig = synthesizeName(t, row, "nameOrig", "Client", "client_id")
	rec.NameDest = synthesizeName(t, row, "nameDest", "Merchant", "merchant_id")

	if f, ok := row.Float("client_id"); ok {
		rec.ClientID = &f
	}
	if f, ok := row.Float("card_id"); ok {
		rec.CardID = &f
	}
	if f, ok := row.Float("merchant_id"); ok {
		rec.MerchantID = &f
	}
	if f, ok := row.Float("mcc"); ok {
		rec.MCC = &f
	}
	if s, ok := row.Text("use_chip"); ok {
		rec.UseChip = &s
	}
	if s, ok := row.Text("merchant_city"); ok {
		rec.MerchantCity = &s
	}

	rec.MerchantState = collapseSentinel(t, row, "merchant_state")
	rec.Errors = collapseSentinel(t, row, "errors")
	rec.Zip = coerceZip(t, row)

	return rec
}

// collapseSentinel renders a column as absent when its raw value is 0, "0",
// or the filled missing marker.
func collapseSentinel(t *dataset.Table, row dataset.Row, col string) *string {
	if !t.HasColumn(col) {
		return nil
	}
	v := row.String(col)
	if v == "" || v == "0" {
		return nil
	}
	return &v
}

// coerceZip returns the zip as a float, or absent when it cannot be parsed.
func coerceZip(t *dataset.Table, row dataset.Row) *float64 {
	if !t.HasColumn("zip") {
		return nil
	}
	if f, ok := row.Float("zip"); ok {
		return &f
	}
	s, _ := row.Text("zip")
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// synthesizeName returns the stored counterparty name when the column
// exists, else derives "{prefix}_{key}" from the key column ("?" when even
// the key is missing).
func synthesizeName(t *dataset.Table, row dataset.Row, nameCol, prefix, keyCol string) string {
	if t.HasColumn(nameCol) {
		return row.String(nameCol)
	}
	key := "?"
	if t.HasColumn(keyCol) {
		key = row.String(keyCol)
	}
	return fmt.Sprintf("%s_%s", prefix, key)
}
