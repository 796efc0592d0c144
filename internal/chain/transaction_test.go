package chain

import (
	"testing"

	"github.com/blues/cfd/internal/config"
)

func testProgram() *Program {
	return NewProgram(config.ChainConfig{
		Network: "testnet3",
		Program: "project_crowdfunding7.aleo",
		Fee:     350000,
	})
}

func TestCreateProjectTransaction(t *testing.T) {
	tx := testProgram().CreateProjectTransaction("aleo1sender", "604379448672405679515024718454075807707", 5000)

	if tx.Sender != "aleo1sender" {
		t.Errorf("Sender = %q, want %q", tx.Sender, "aleo1sender")
	}
	if tx.Network != "testnet3" {
		t.Errorf("Network = %q, want %q", tx.Network, "testnet3")
	}
	if tx.Program != "project_crowdfunding7.aleo" {
		t.Errorf("Program = %q, want %q", tx.Program, "project_crowdfunding7.aleo")
	}
	if tx.Function != FunctionCreateProject {
		t.Errorf("Function = %q, want %q", tx.Function, FunctionCreateProject)
	}
	if tx.FeeLimit != 350000 {
		t.Errorf("FeeLimit = %d, want 350000", tx.FeeLimit)
	}

	// 参数顺序由程序的调用约定固定：内容哈希、目标金额
	want := []string{
		"604379448672405679515024718454075807707field",
		"5000field",
	}
	if len(tx.Arguments) != len(want) {
		t.Fatalf("Arguments = %v, want %v", tx.Arguments, want)
	}
	for i := range want {
		if tx.Arguments[i] != want[i] {
			t.Errorf("Arguments[%d] = %q, want %q", i, tx.Arguments[i], want[i])
		}
	}
}

func TestDepositTransaction(t *testing.T) {
	tx := testProgram().DepositTransaction("aleo1donor", "12345", "aleo1beneficiary", 250)

	if tx.Function != FunctionDeposit {
		t.Errorf("Function = %q, want %q", tx.Function, FunctionDeposit)
	}

	// 参数顺序：内容哈希、受益人地址（不带类型后缀）、金额
	want := []string{
		"12345field",
		"aleo1beneficiary",
		"250field",
	}
	if len(tx.Arguments) != len(want) {
		t.Fatalf("Arguments = %v, want %v", tx.Arguments, want)
	}
	for i := range want {
		if tx.Arguments[i] != want[i] {
			t.Errorf("Arguments[%d] = %q, want %q", i, tx.Arguments[i], want[i])
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{5000, "5000"},
		{0.5, "0.5"},
		{123.45, "123.45"},
	}

	for _, tt := range tests {
		if got := formatAmount(tt.amount); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
