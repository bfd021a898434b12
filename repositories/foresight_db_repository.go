package repositories

// ForesightDbRepository hosts the query methods against the foresight
// database. It is stateless, the executor travels with every call.
type ForesightDbRepository struct{}

func NewForesightDbRepository() *ForesightDbRepository {
	return &ForesightDbRepository{}
}
