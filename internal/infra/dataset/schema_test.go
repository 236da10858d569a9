package dataset_test

import (
	"testing"
)

func TestDetectSchema_SignedVariant(t *testing.T) {
	table := mustParse(t, "step,type,amount,nameOrig,nameDest,isFraud\n1,TRANSFER,100,C1,M1,0\n")

	schema := table.Schema()
	if schema.TypeColumn != "type" {
		t.Errorf("expected type column, got %q", schema.TypeColumn)
	}
	if schema.FraudColumn != "isFraud" {
		t.Errorf("expected isFraud column, got %q", schema.FraudColumn)
	}
	if schema.TimeColumn != "step" {
		t.Errorf("expected step time column, got %q", schema.TimeColumn)
	}
	if !schema.SignedAmounts {
		t.Error("expected signed amounts for the type variant")
	}
}

func TestDetectSchema_UnsignedVariant(t *testing.T) {
	table := mustParse(t, "id,date,client_id,amount,use_chip,merchant_id,errors\n1,2023-01-02,7,50,Swipe Transaction,44,\n")

	schema := table.Schema()
	if schema.TypeColumn != "use_chip" {
		t.Errorf("expected use_chip type column, got %q", schema.TypeColumn)
	}
	if schema.FraudColumn != "errors" {
		t.Errorf("expected errors fraud column, got %q", schema.FraudColumn)
	}
	if schema.CustomerColumn != "client_id" {
		t.Errorf("expected client_id customer column, got %q", schema.CustomerColumn)
	}
	if schema.MerchantColumn != "merchant_id" {
		t.Errorf("expected merchant_id column, got %q", schema.MerchantColumn)
	}
	if schema.TimeColumn != "date" {
		t.Errorf("expected date time column, got %q", schema.TimeColumn)
	}
	if schema.SignedAmounts {
		t.Error("expected unsigned amounts for the use_chip variant")
	}
}

func TestDetectSchema_NoIndicators(t *testing.T) {
	table := mustParse(t, "foo,bar\n1,2\n")

	schema := table.Schema()
	if schema.TypeColumn != "" || schema.FraudColumn != "" || schema.TimeColumn != "" {
		t.Errorf("expected empty schema, got %+v", schema)
	}
	if schema.HasAmount {
		t.Error("expected HasAmount false")
	}
}

func TestSchemaIsFraud_FlagColumn(t *testing.T) {
	table := mustParse(t, "id,amount,isFraud\n1,10,1\n2,20,0\n")

	schema := table.Schema()
	if !schema.IsFraud(table.Rows()[0]) {
		t.Error("expected row with isFraud=1 flagged")
	}
	if schema.IsFraud(table.Rows()[1]) {
		t.Error("expected row with isFraud=0 not flagged")
	}
}

func TestSchemaIsFraud_ErrorsColumn(t *testing.T) {
	table := mustParse(t, "id,amount,errors\n1,10,bad_pin\n2,20,\n3,30,0\n")

	schema := table.Schema()
	rows := table.Rows()
	if !schema.IsFraud(rows[0]) {
		t.Error("expected non-empty errors flagged")
	}
	if schema.IsFraud(rows[1]) {
		t.Error("expected empty errors not flagged")
	}
	if schema.IsFraud(rows[2]) {
		t.Error("expected sentinel \"0\" errors not flagged")
	}
}
