package financesvc

import (
	"sort"

	"swiftride/model"
)

const TopVehicleLimit = 10

// Overview folds per-status totals into the revenue summary. Only paid
// groups count as transactions; TotalBookings counts every group.
func Overview(totals []model.StatusTotal) model.RevenueOverview {
	var out model.RevenueOverview
	for _, t := range totals {
		out.TotalBookings += t.Count
		if t.PaymentStatus != model.PaymentPaid || t.Count == 0 {
			continue
		}
		if out.TotalTransactions == 0 || t.Min < out.MinTransactionValue {
			out.MinTransactionValue = t.Min
		}
		if out.TotalTransactions == 0 || t.Max > out.MaxTransactionValue {
			out.MaxTransactionValue = t.Max
		}
		out.TotalRevenue += t.Amount
		out.TotalTransactions += t.Count
	}
	if out.TotalTransactions > 0 {
		out.AverageTransactionValue = out.TotalRevenue / float64(out.TotalTransactions)
	}
	return out
}

// ByPaymentStatus merges totals per payment status, ordered by status.
func ByPaymentStatus(totals []model.StatusTotal) []model.StatusBucket {
	return buckets(totals, func(t model.StatusTotal) string { return string(t.PaymentStatus) })
}

// ByBookingStatus merges totals per booking status, ordered by status.
func ByBookingStatus(totals []model.StatusTotal) []model.StatusBucket {
	return buckets(totals, func(t model.StatusTotal) string { return string(t.Status) })
}

func buckets(totals []model.StatusTotal, key func(model.StatusTotal) string) []model.StatusBucket {
	idx := map[string]int{}
	out := []model.StatusBucket{}
	for _, t := range totals {
		k := key(t)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, model.StatusBucket{Status: k})
		}
		out[i].Count += t.Count
		out[i].Amount += t.Amount
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}
