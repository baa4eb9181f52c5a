package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNo(t *testing.T) {
	day := time.Date(2025, 1, 9, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "YC202501090001", GenerateOrderNo(day, 1))
	assert.Equal(t, "YC202501090123", GenerateOrderNo(day, 123))
}

func TestQualityReport_Validate(t *testing.T) {
	r := &QualityReport{
		OrderNo:     "YC202501090001",
		MouldCode:   "M001",
		ReasonCode:  "R001",
		DeptID:      "D002",
		Description: "burr on edge",
	}
	assert.NoError(t, r.Validate())

	r.DeptID = ""
	assert.ErrorContains(t, r.Validate(), "department")
}

func TestCodeNameText(t *testing.T) {
	assert.Equal(t, "M001(front bumper)", CodeNameText("M001", "front bumper"))
	assert.Equal(t, "M001", CodeNameText("M001", ""))
}

func TestQianTiaoUser_Label(t *testing.T) {
	u := QianTiaoUser{DeptName: "Tooling", PlineName: "Line 3", OperatorUserName: "zhang"}
	assert.Equal(t, "Tooling-Line 3-zhang", u.Label())

	u.OperatorNickName = "Zhang San"
	assert.Equal(t, "Tooling-Line 3-Zhang San", u.Label())
}
