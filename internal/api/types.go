package api

// Transaction is a ledger transaction as the server reports it. Sender is a
// pointer because reward-style transactions carry a JSON null sender; the
// server owns the interpretation.
type Transaction struct {
	ID        string  `json:"id,omitempty"`
	Sender    *string `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
	Signature string  `json:"signature,omitempty"`
}

// SenderLabel returns the sender address, or "SYSTEM" for reward
// transactions with no sender.
func (t *Transaction) SenderLabel() string {
	if t.Sender == nil || *t.Sender == "" {
		return "SYSTEM"
	}
	return *t.Sender
}

// Block is one record of the chain as the server reports it.
type Block struct {
	ID           string        `json:"id,omitempty"`
	Index        int           `json:"index"`
	Timestamp    int64         `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
	Nonce        int64         `json:"nonce"`
	PreviousHash string        `json:"previousHash"`
	Hash         string        `json:"hash"`
}

// LoginResult is the successful login response.
type LoginResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SignupRequest is the signup payload.
type SignupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	ContactNo string `json:"contactNo"`
}

// Message is the generic {message} success shape used by the auth
// endpoints.
type Message struct {
	Message string `json:"message"`
}

// Balance is the response of the balance endpoint.
type Balance struct {
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
}

// ValidationResult is the response of the chain validation endpoint.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}
