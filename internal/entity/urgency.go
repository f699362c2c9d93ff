package entity

import "time"

// UrgencyLevel é derivado, nunca persistido: recalculado a cada leitura a
// partir de (now - updated_at) e do threshold do status atual.
type UrgencyLevel string

const (
	UrgencyRecent    UrgencyLevel = "recent"
	UrgencyAttention UrgencyLevel = "attention"
	UrgencyUrgent    UrgencyLevel = "urgent"
	UrgencyCritical  UrgencyLevel = "critical"
)

// urgencyRank ordena por severidade: critical primeiro.
var urgencyRank = map[UrgencyLevel]int{
	UrgencyCritical:  0,
	UrgencyUrgent:    1,
	UrgencyAttention: 2,
	UrgencyRecent:    3,
}

// Rank devolve a posição de ordenação (menor = mais severo).
func (u UrgencyLevel) Rank() int {
	if r, ok := urgencyRank[u]; ok {
		return r
	}
	return len(urgencyRank)
}

// Alerting indica se o nível conta para o badge de alertas.
func (u UrgencyLevel) Alerting() bool {
	return u == UrgencyUrgent || u == UrgencyCritical
}

// Tabela fixa de staleness por status, em horas. Fechado/perdido ficam fora
// da tabela de propósito: são isentos (threshold infinito) e o chamador deve
// filtrá-los ANTES de classificar.
var statusThresholds = map[LeadStatus]int64{
	StatusNovo:          24,
	StatusEmAtendimento: 48,
	StatusQualificado:   72,
	StatusProposta:      120,
}

const defaultThresholdHours = 24

// ThresholdHoursFor devolve o threshold em horas para o status. Status
// terminal devolve ok=false (isento). Status fora do enum cai no default de
// 24h para nunca sumir do radar.
func ThresholdHoursFor(status LeadStatus) (hours int64, ok bool) {
	if status.Terminal() {
		return 0, false
	}
	if h, found := statusThresholds[status]; found {
		return h, true
	}
	return defaultThresholdHours, true
}

// ClassifyUrgency aplica os cortes 0.5x / 1.0x / 1.5x do threshold. Valores
// exatamente na fronteira caem no nível mais severo (h == t/2 já é
// attention, h == t já é urgent, h == 1.5t já é critical).
func ClassifyUrgency(hoursSinceUpdate, thresholdHours int64) UrgencyLevel {
	switch {
	case hoursSinceUpdate*2 < thresholdHours:
		return UrgencyRecent
	case hoursSinceUpdate < thresholdHours:
		return UrgencyAttention
	case hoursSinceUpdate*2 < thresholdHours*3:
		return UrgencyUrgent
	default:
		return UrgencyCritical
	}
}

// HoursSince trunca para baixo (floor), nunca arredonda: 23h59m conta como
// 23. A mesma regra vale para toda comparação com threshold.
func HoursSince(now, then time.Time) int64 {
	if then.After(now) {
		return 0
	}
	return int64(now.Sub(then).Hours())
}
