package synth

import (
	"math"
	"time"

	"sample-dashboard/internal/models"
)

const (
	TransactionsPerDay = 3

	amountMin       = 50.0
	amountMax       = 500.0
	amountPrecision = 100.0
)

// Seed bands keep the fields of one record from sharing a seed.
const (
	minuteSeedOffset   = 1000
	customerSeedOffset = 2000
	productSeedOffset  = 3000
	statusSeedOffset   = 4000
	typeSeedOffset     = 5000
	amountSeedOffset   = 6000
)

var CustomerNames = []string{
	"Maria Silva", "João Santos", "Ana Oliveira", "Pedro Costa",
	"Carla Souza", "Lucas Ferreira", "Julia Lima", "Rafael Pereira",
	"Fernanda Rodrigues", "Gabriel Almeida", "Beatriz Nascimento",
	"Thiago Barbosa", "Larissa Ribeiro", "Bruno Martins", "Amanda Gomes",
}

var ProductNames = []string{
	"Plano Pro Mensal", "Plano Enterprise", "Plano Starter",
	"Add-on Analytics", "Add-on API", "Consultoria Premium",
	"Treinamento Equipe", "Suporte Prioritário",
}

// Table order matters: the same weights in another order draw differently.
var StatusDistribution = []Weighted[models.TransactionStatus]{
	{Value: models.StatusCompleted, Probability: 0.70},
	{Value: models.StatusPending, Probability: 0.15},
	{Value: models.StatusFailed, Probability: 0.10},
	{Value: models.StatusRefunded, Probability: 0.05},
}

var TypeDistribution = []Weighted[models.TransactionType]{
	{Value: models.TypeSubscription, Probability: 0.50},
	{Value: models.TypePurchase, Probability: 0.30},
	{Value: models.TypeUpgrade, Probability: 0.15},
	{Value: models.TypeRefund, Probability: 0.05},
}

// TransactionCount is the number of records generated for a window of days.
func TransactionCount(days int) int {
	return days * TransactionsPerDay
}

// transactionTime moves end back by whole days and overwrites hour and
// minute. Seconds and milliseconds are inherited from end.
func transactionTime(end time.Time, index int) time.Time {
	daysOffset := index / TransactionsPerDay
	hour := int(math.Floor(SeededRandom(index) * 24))
	minute := int(math.Floor(SeededRandom(index+minuteSeedOffset) * 60))

	day := end.UTC().AddDate(0, 0, -daysOffset)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute,
		day.Second(), day.Nanosecond(), time.UTC)
}

func transactionAmount(seed int) float64 {
	v := amountMin + SeededRandom(seed)*(amountMax-amountMin)
	return math.Floor(v*amountPrecision+0.5) / amountPrecision
}

// GenerateTransaction builds the record at index for a window ending at end.
func GenerateTransaction(index int, end time.Time) models.Transaction {
	customer := Pick(index+customerSeedOffset, CustomerNames)
	txType := WeightedSample(index+typeSeedOffset, TypeDistribution)

	amount := transactionAmount(index + amountSeedOffset)
	if txType == models.TypeRefund {
		amount = -amount
	}

	return models.Transaction{
		ID:            TransactionID(index + 1),
		CustomerName:  customer,
		CustomerEmail: EmailFromName(customer),
		Amount:        amount,
		Status:        WeightedSample(index+statusSeedOffset, StatusDistribution),
		Type:          txType,
		Date:          models.NewTimestamp(transactionTime(end, index)),
		ProductName:   Pick(index+productSeedOffset, ProductNames),
	}
}

// Transactions generates count records in index order (oldest day last).
func Transactions(end time.Time, count int) []models.Transaction {
	if count <= 0 {
		return []models.Transaction{}
	}
	txns := make([]models.Transaction, count)
	for i := range txns {
		txns[i] = GenerateTransaction(i, end)
	}
	return txns
}
