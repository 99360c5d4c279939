package dbhelper

import (
	"github.com/wishlistapp/apiv1/models"
	"github.com/wishlistapp/apiv1/utils"
	"errors"
	"fmt"
	"strings"
)

func CreateUser(email, displayName, passwordHash string) (models.User, error, string) {
	user := models.User{
		Email: email,
		PasswordHash: passwordHash,
		DisplayName: displayName,
	}
	result := DB.Create(&user)
	if result.Error != nil {
		errString := fmt.Sprintf("%v", result.Error)
		if isDuplicateKeyError(result.Error) {
			if strings.Contains(errString, "email") {
				return user, result.Error, utils.EMAIL_TAKEN_SIGNUP_ERROR
			} else if strings.Contains(errString, "display_name") {
				return user, result.Error, utils.DISPLAY_NAME_TAKEN_SIGNUP_ERROR
			}
		}
		return user, result.Error, utils.GENERIC_SIGNUP_ERROR
	}
	return user, nil, ""
}

func LoginUserWithPassword(email, password string) (models.User, error, string) {
	var user models.User
	result := DB.Raw("SELECT * FROM users WHERE email = ?", email).Scan(&user)
	if result.Error != nil {
		return user, result.Error, utils.GENERIC_LOGIN_ERROR
	}
	if result.RowsAffected == 0 {
		return user, errors.New("no user with that email"), utils.GENERIC_LOGIN_ERROR
	}
	compareErr := utils.ComparePasswords(user.PasswordHash, password)
	if compareErr != nil {
		return user, compareErr, utils.GENERIC_LOGIN_ERROR
	}
	return user, nil, ""
}

// DeleteUser removes the account row and every session it still holds.
func DeleteUser(userId uint) error {
	if err := PurgeSessions(userId); err != nil {
		return err
	}
	result := DB.Exec("DELETE FROM users WHERE id = ?", userId)
	return result.Error
}
