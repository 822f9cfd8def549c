package controllers

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/arvind-722/ProfitNest/config"
	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/utils"
)

// reportWindow resolves a report period into a start/end range
func reportWindow(period string) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	var startDate, endDate time.Time
	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, time.UTC)
	case "week":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, time.UTC)
		startDate = endDate.AddDate(0, 0, -6)
		startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	default:
		return startDate, endDate, false
	}
	return startDate, endDate, true
}

type ledgerReportSummary struct {
	TotalEntries   int
	TotalCredits   float64
	TotalDebits    float64
	TotalEarnings  float64
	TotalReferral  float64
	TotalRecharges float64
	TotalWithdrawn float64
	UniqueUsers    int
	NetFlow        float64
}

func buildLedgerReport(startDate, endDate time.Time) ([]models.Transaction, ledgerReportSummary, error) {
	var transactions []models.Transaction
	err := config.DB.Where("created_at >= ? AND created_at <= ? AND status = ?",
		startDate, endDate, models.TransactionStatusCompleted).
		Preload("User").
		Order("created_at DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, ledgerReportSummary{}, err
	}

	var summary ledgerReportSummary
	userSet := make(map[uint]bool)
	for _, txn := range transactions {
		summary.TotalEntries++
		userSet[txn.UserID] = true
		if txn.IsCredit() {
			summary.TotalCredits += txn.Amount
		} else {
			summary.TotalDebits += txn.Amount
		}
		switch txn.Type {
		case models.TransactionTypeEarning:
			summary.TotalEarnings += txn.Amount
		case models.TransactionTypeReferral:
			summary.TotalReferral += txn.Amount
		case models.TransactionTypeRecharge:
			summary.TotalRecharges += txn.Amount
		case models.TransactionTypeWithdrawal:
			summary.TotalWithdrawn += txn.Amount
		}
	}
	summary.UniqueUsers = len(userSet)
	summary.NetFlow = math.Round((summary.TotalCredits-summary.TotalDebits)*100) / 100
	summary.TotalCredits = math.Round(summary.TotalCredits*100) / 100
	summary.TotalDebits = math.Round(summary.TotalDebits*100) / 100
	summary.TotalEarnings = math.Round(summary.TotalEarnings*100) / 100
	summary.TotalReferral = math.Round(summary.TotalReferral*100) / 100
	summary.TotalRecharges = math.Round(summary.TotalRecharges*100) / 100
	summary.TotalWithdrawn = math.Round(summary.TotalWithdrawn*100) / 100
	return transactions, summary, nil
}

func ledgerSummaryRows(summary ledgerReportSummary) [][]string {
	return [][]string{
		{"Total Entries", fmt.Sprintf("%d", summary.TotalEntries)},
		{"Unique Users", fmt.Sprintf("%d", summary.UniqueUsers)},
		{"Total Credits", fmt.Sprintf("%.2f", summary.TotalCredits)},
		{"Total Debits", fmt.Sprintf("%.2f", summary.TotalDebits)},
		{"Daily Profit Paid", fmt.Sprintf("%.2f", summary.TotalEarnings)},
		{"Referral Paid", fmt.Sprintf("%.2f", summary.TotalReferral)},
		{"Recharges", fmt.Sprintf("%.2f", summary.TotalRecharges)},
		{"Withdrawn", fmt.Sprintf("%.2f", summary.TotalWithdrawn)},
		{"Net Flow", fmt.Sprintf("%.2f", summary.NetFlow)},
	}
}

// Admin: Download ledger report as Excel
func DownloadLedgerReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadLedgerReportExcel called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportWindow(period)
	if !ok {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	transactions, summary, err := buildLedgerReport(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch transactions: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d transactions for Excel report", len(transactions))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Ledger Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("PROFITNEST - Ledger Report")
	titleRow = sheet.AddRow()
	titleRow.AddCell().SetString("Email: support@profitnest.app")
	titleRow = sheet.AddRow()
	titleRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"Txn ID", "Reference", "User ID", "User Name", "Date", "Type", "Amount", "Signed", "Description"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, txn := range transactions {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(txn.ID))
		row.AddCell().SetString(txn.Reference)
		row.AddCell().SetInt(int(txn.UserID))
		row.AddCell().SetString(txn.User.Username)
		row.AddCell().SetString(txn.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(txn.Type)
		row.AddCell().SetFloat(txn.Amount)
		row.AddCell().SetFloat(txn.SignedAmount())
		row.AddCell().SetString(txn.Description)
	}

	sheet.AddRow() // spacing

	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	for _, data := range ledgerSummaryRows(summary) {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ledger_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel report for period %s", period)
}

// Admin: Download ledger report as PDF
func DownloadLedgerReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadLedgerReportPDF called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportWindow(period)
	if !ok {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	transactions, summary, err := buildLedgerReport(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch transactions: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d transactions for PDF report", len(transactions))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "PROFITNEST - Ledger Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Daily Profit Investment Platform")
	pdf.Ln(6)
	pdf.Cell(0, 8, "Period: "+strings.ToUpper(period)+" | "+startDate.Format("2006-01-02")+" to "+endDate.Format("2006-01-02"))
	pdf.Ln(10)

	headers := []string{"Txn ID", "User ID", "User Name", "Date", "Type", "Amount", "Signed", "Description"}
	colWidths := []float64{20, 20, 40, 32, 25, 25, 25, 80}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, txn := range transactions {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", txn.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%d", txn.UserID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, txn.User.Username, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, txn.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, txn.Type, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, fmt.Sprintf("%.2f", txn.Amount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, fmt.Sprintf("%.2f", txn.SignedAmount()), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[7], 8, txn.Description, "1", 0, "L", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(70, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	pdf.SetFillColor(255, 255, 255)
	for _, data := range ledgerSummaryRows(summary) {
		pdf.CellFormat(50, 8, data[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, data[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ledger_report_%s.pdf", period))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF report for period %s", period)
}
