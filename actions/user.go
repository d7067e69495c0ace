package actions

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"storefront/auth"
	"storefront/models"
	"storefront/validator"
)

// SignUp creates the account and establishes a session. The two steps are
// best-effort: if issuing the session fails the user row stays and a normal
// sign-in still works afterwards.
func SignUp(ctx context.Context, d *Deps, sessionCartID string, payload *validator.SignUpPayload) Result {
	if fields := d.Validate.Validate(payload); fields != nil {
		return invalid(fields)
	}

	digest, err := auth.HashPassword(payload.Password)
	if err != nil {
		return fail(err, "")
	}

	user := &models.User{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: digest,
		Role:     models.RoleUser,
	}
	if err := d.Store.CreateUser(ctx, user); err != nil {
		return fail(err, "email is already in use")
	}

	sess, err := d.Sessions.Issue(ctx, user)
	if err != nil {
		return Result{
			Message: "account created, but sign-in failed; please sign in",
			Kind:    KindUnknown,
		}
	}

	mergeSessionCart(ctx, d, sess, sessionCartID)

	res := ok("user created successfully")
	res.Token = sess.Token
	return res
}

// SignIn authenticates and adopts any session cart built before sign-in.
func SignIn(ctx context.Context, d *Deps, sessionCartID string, payload *validator.SignInPayload) Result {
	if fields := d.Validate.Validate(payload); fields != nil {
		return invalid(fields)
	}

	sess, err := d.Sessions.Authenticate(ctx, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return unauthorized("invalid email or password")
		}
		return fail(err, "")
	}

	mergeSessionCart(ctx, d, sess, sessionCartID)

	res := ok("signed in successfully")
	res.Token = sess.Token
	return res
}

func SignOut(ctx context.Context, d *Deps, sess *auth.Session) Result {
	if r := requireSignedIn(sess); r != nil {
		return *r
	}
	if err := d.Sessions.Revoke(ctx, sess.Token); err != nil {
		return fail(err, "")
	}
	return ok("signed out successfully")
}

// UpdateAddress stores the shipping address on the signed-in user.
func UpdateAddress(ctx context.Context, d *Deps, sess *auth.Session, payload *validator.ShippingAddressPayload) Result {
	if r := requireSignedIn(sess); r != nil {
		return *r
	}
	if fields := d.Validate.Validate(payload); fields != nil {
		return invalid(fields)
	}

	user, err := d.Store.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return fail(err, "")
	}

	user.Address = &models.ShippingAddress{
		FullName:      payload.FullName,
		StreetAddress: payload.StreetAddress,
		City:          payload.City,
		PostalCode:    payload.PostalCode,
		Country:       payload.Country,
		Lat:           payload.Lat,
		Lng:           payload.Lng,
	}
	if err := d.Store.UpdateUser(ctx, user); err != nil {
		return fail(err, "")
	}

	return ok("address updated successfully")
}

// UpdatePaymentMethod stores the preferred payment method, validated against
// the configured enumeration.
func UpdatePaymentMethod(ctx context.Context, d *Deps, sess *auth.Session, payload *validator.PaymentMethodPayload) Result {
	if r := requireSignedIn(sess); r != nil {
		return *r
	}
	if fields := d.Validate.Validate(payload); fields != nil {
		return invalid(fields)
	}

	user, err := d.Store.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return fail(err, "")
	}

	user.PaymentMethod = payload.Type
	if err := d.Store.UpdateUser(ctx, user); err != nil {
		return fail(err, "")
	}

	return ok("payment method updated successfully")
}

func UpdateProfile(ctx context.Context, d *Deps, sess *auth.Session, payload *validator.UpdateProfilePayload) Result {
	if r := requireSignedIn(sess); r != nil {
		return *r
	}
	if fields := d.Validate.Validate(payload); fields != nil {
		return invalid(fields)
	}

	user, err := d.Store.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return fail(err, "")
	}

	user.Name = payload.Name
	user.Email = payload.Email
	if err := d.Store.UpdateUser(ctx, user); err != nil {
		return fail(err, "email is already in use")
	}

	d.Pages.Invalidate(ctx, "/user/profile")
	return ok("profile updated successfully")
}

// GetProfile returns the signed-in user's own record.
func GetProfile(ctx context.Context, d *Deps, sess *auth.Session) Result {
	if r := requireSignedIn(sess); r != nil {
		return *r
	}

	user, err := d.Store.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return fail(err, "")
	}
	return okData("user found", user)
}

// GetUser serves the admin user editor.
func GetUser(ctx context.Context, d *Deps, sess *auth.Session, id string) Result {
	if r := requireAdmin(sess); r != nil {
		return *r
	}

	user, err := d.Store.GetUserByID(ctx, id)
	if err != nil {
		return fail(err, "")
	}
	return okData("user found", user)
}

// ListUsers returns one admin page of users, filtered on name.
func ListUsers(ctx context.Context, d *Deps, sess *auth.Session, query string, page, limit int) Result {
	if r := requireAdmin(sess); r != nil {
		return *r
	}

	limit = d.limitOr(limit)
	users, count, err := d.Store.ListUsers(ctx, query, page, limit)
	if err != nil {
		return fail(err, "")
	}
	return okPage("users listed successfully", users, totalPages(count, limit))
}

// UpdateUser is the admin edit of name and role.
func UpdateUser(ctx context.Context, d *Deps, sess *auth.Session, payload *validator.UpdateUserPayload) Result {
	if r := requireAdmin(sess); r != nil {
		return *r
	}
	if fields := d.Validate.Validate(payload); fields != nil {
		return invalid(fields)
	}

	user, err := d.Store.GetUserByID(ctx, payload.ID)
	if err != nil {
		return fail(err, "")
	}

	user.Name = payload.Name
	user.Role = payload.Role
	if err := d.Store.UpdateUser(ctx, user); err != nil {
		return fail(err, "email is already in use")
	}

	d.Pages.Invalidate(ctx, "/admin/users")
	return ok("user updated successfully")
}

func DeleteUser(ctx context.Context, d *Deps, sess *auth.Session, id string) Result {
	if r := requireAdmin(sess); r != nil {
		return *r
	}

	if err := d.Store.DeleteUser(ctx, id); err != nil {
		return fail(err, "")
	}

	d.Pages.Invalidate(ctx, "/admin/users")
	return ok("user deleted successfully")
}

// mergeSessionCart folds the anonymous session cart into the user's cart
// after authentication. Best-effort: a failure leaves both carts usable.
func mergeSessionCart(ctx context.Context, d *Deps, sess *auth.Session, sessionCartID string) {
	if sessionCartID == "" {
		return
	}
	if err := adoptSessionCart(ctx, d, sess, sessionCartID); err != nil {
		log.Warn().Err(err).Str("sessionCartId", sessionCartID).Msg("session cart merge failed")
	}
}
