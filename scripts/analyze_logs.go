package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalErrors       int
	LoginSuccess      int
	LoginFailures     int
	OTPFailures       int
	UsersVerified     int
	BlockedLoginTries int
	SweepRuns         int
	SweepDaysSettled  int
	SweepExpired      int
	SweepSkipped      int
	WithdrawalsPaid   int
	PaymentsApproved  int
	ErrorPatterns     map[string]int
}

var sweepRegex = regexp.MustCompile(`Accrual sweep for \d{4}-\d{2}-\d{2}: (\d+) days settled, (\d+) investments expired, (\d+) skipped`)

func main() {
	today := time.Now().Format("2006-01-02")
	logDir := "./logs"

	stats := &LogStats{
		ErrorPatterns: make(map[string]int),
	}

	analyzeErrorLogs(filepath.Join(logDir, fmt.Sprintf("error-%s.log", today)), stats)
	analyzeInfoLogs(filepath.Join(logDir, fmt.Sprintf("info-%s.log", today)), stats)

	printReport(stats)
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		if strings.Contains(line, "Login failed") || strings.Contains(line, "Invalid password") {
			stats.LoginFailures++
		}
		if strings.Contains(line, "Blocked user attempted login") {
			stats.BlockedLoginTries++
		}
		if strings.Contains(line, "OTP mismatch") || strings.Contains(line, "Expired OTP") {
			stats.OTPFailures++
		}

		extractErrorPattern(line, stats)
	}
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "logged in successfully") {
			stats.LoginSuccess++
		}
		if strings.Contains(line, "verified successfully") {
			stats.UsersVerified++
		}
		if strings.Contains(line, "Withdrawal") && strings.Contains(line, "approved") {
			stats.WithdrawalsPaid++
		}
		if strings.Contains(line, "Payment request") && strings.Contains(line, "approved") {
			stats.PaymentsApproved++
		}

		if m := sweepRegex.FindStringSubmatch(line); m != nil {
			stats.SweepRuns++
			stats.SweepDaysSettled += atoi(m[1])
			stats.SweepExpired += atoi(m[2])
			stats.SweepSkipped += atoi(m[3])
		}
	}
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

func extractErrorPattern(line string, stats *LogStats) {
	// Extract the main error message
	parts := strings.Split(line, ":")
	if len(parts) > 1 {
		errorMsg := strings.TrimSpace(parts[1])
		stats.ErrorPatterns[errorMsg]++
	}
}

func printReport(stats *LogStats) {
	fmt.Println("\n=== Log Analysis Report ===")
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Println("\n1. Authentication Statistics:")
	fmt.Printf("   Successful Logins: %d\n", stats.LoginSuccess)
	fmt.Printf("   Failed Logins: %d\n", stats.LoginFailures)
	fmt.Printf("   Blocked Login Attempts: %d\n", stats.BlockedLoginTries)
	fmt.Printf("   Users Verified: %d\n", stats.UsersVerified)
	fmt.Printf("   Failed OTP Verifications: %d\n", stats.OTPFailures)

	fmt.Println("\n2. Accrual Sweeps:")
	fmt.Printf("   Runs: %d\n", stats.SweepRuns)
	fmt.Printf("   Days Settled: %d\n", stats.SweepDaysSettled)
	fmt.Printf("   Investments Expired: %d\n", stats.SweepExpired)
	fmt.Printf("   Skipped (retried next run): %d\n", stats.SweepSkipped)

	fmt.Println("\n3. Admin Activity:")
	fmt.Printf("   Payment Requests Approved: %d\n", stats.PaymentsApproved)
	fmt.Printf("   Withdrawals Approved: %d\n", stats.WithdrawalsPaid)

	fmt.Println("\n4. Error Statistics:")
	fmt.Printf("   Total Errors: %d\n", stats.TotalErrors)

	fmt.Println("\n5. Most Common Errors:")
	printTopErrors(stats.ErrorPatterns, 5)
}

func printTopErrors(errors map[string]int, limit int) {
	type errorCount struct {
		error string
		count int
	}

	var errorList []errorCount
	for err, count := range errors {
		errorList = append(errorList, errorCount{err, count})
	}

	sort.Slice(errorList, func(i, j int) bool {
		return errorList[i].count > errorList[j].count
	})

	for i, err := range errorList {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d occurrences\n", err.error, err.count)
	}
}
